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

import "github.com/l3montree-dev/contentguard/utils"

type ModelWriter[ID any, T utils.Tabler] interface {
	Create(tx DB, t *T) error
	Save(tx DB, t *T) error
}

type ModelReader[ID any, T utils.Tabler] interface {
	Read(id ID) (T, error)
	List(ids []ID) ([]T, error)
	All() ([]T, error)
}

type BatchModelWriter[T utils.Tabler] interface {
	CreateBatch(tx DB, ts []T) error
}

type Transactioner interface {
	Transaction(func(tx DB) error) error
	GetDB(tx DB) DB
}

type Repository[ID any, T utils.Tabler] interface {
	ModelWriter[ID, T]
	ModelReader[ID, T]
	BatchModelWriter[T]
	Transactioner
}
