// Copyright (C) 2026 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package shared

// ContentRef is anything the pipeline can scan: a typed, identifiable piece of text.
type ContentRef interface {
	Kind() string
	ID() string
	Text() string
}

// TextContent is the default ContentRef. FieldName is optional and feeds the context boost.
type TextContent struct {
	ContentKind string
	ContentID   string
	Body        string
	FieldName   string
}

func NewTextContent(kind, id, body string) TextContent {
	return TextContent{ContentKind: kind, ContentID: id, Body: body}
}

func (c TextContent) Kind() string { return c.ContentKind }
func (c TextContent) ID() string   { return c.ContentID }
func (c TextContent) Text() string { return c.Body }

// Field returns the field name the text was taken from, if known.
func (c TextContent) Field() string { return c.FieldName }

// FieldNamer is implemented by content references which know their source field.
type FieldNamer interface {
	Field() string
}
