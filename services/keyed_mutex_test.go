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

package services

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyedMutex(t *testing.T) {
	t.Run("should serialize holders of the same key", func(t *testing.T) {
		locks := newKeyedMutex()
		counter := 0

		var wg sync.WaitGroup
		for range 50 {
			wg.Go(func() {
				unlock := locks.Lock("a")
				defer unlock()
				counter++
			})
		}
		wg.Wait()

		assert.Equal(t, 50, counter)
	})

	t.Run("should drop unused keys", func(t *testing.T) {
		locks := newKeyedMutex()

		unlockA := locks.Lock("a")
		unlockB := locks.Lock("b")
		assert.Equal(t, 2, locks.size())

		unlockA()
		unlockB()
		assert.Equal(t, 0, locks.size())
	})
}
