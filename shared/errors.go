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

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrAlreadyResolved  = errors.New("violation already resolved")
	ErrQueueFull        = errors.New("scan queue is full")
	ErrInsufficientRole = errors.New("insufficient role")
	ErrNotActive        = errors.New("governance action is not active")
	ErrDuplicateJob     = errors.New("an identical scan job was accepted recently")
)

// NotFoundError names the missing entity. errors.Is(err, ErrNotFound) holds for it.
type NotFoundError struct {
	Entity string
	ID     string
}

func NewNotFoundError(entity string, id fmt.Stringer) NotFoundError {
	return NotFoundError{Entity: entity, ID: id.String()}
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

func (e NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
