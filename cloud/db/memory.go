// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package db

import (
	"sort"
	"sync"
)

// MemoryDatabase keeps renders for the life of the process.
type MemoryDatabase struct {
	mu      sync.Mutex
	renders map[string]Render
}

func NewMemoryDatabase() *MemoryDatabase {
	return &MemoryDatabase{renders: make(map[string]Render)}
}

func (mem *MemoryDatabase) PutRender(render Render) error {
	mem.mu.Lock()
	defer mem.mu.Unlock()

	if _, ok := mem.renders[render.Name]; ok {
		return ErrExists
	}
	mem.renders[render.Name] = render
	return nil
}

func (mem *MemoryDatabase) ReadRender(name string) (Render, error) {
	mem.mu.Lock()
	defer mem.mu.Unlock()

	render, ok := mem.renders[name]
	if !ok {
		return render, ErrNotFound
	}
	return render, nil
}

func (mem *MemoryDatabase) DeleteRender(name string) error {
	mem.mu.Lock()
	defer mem.mu.Unlock()

	delete(mem.renders, name)
	return nil
}

// ReadRenders returns renders newest first.
func (mem *MemoryDatabase) ReadRenders() ([]Render, error) {
	mem.mu.Lock()
	defer mem.mu.Unlock()

	renders := make([]Render, 0, len(mem.renders))
	for _, render := range mem.renders {
		renders = append(renders, render)
	}
	sort.Slice(renders, func(i, j int) bool {
		if renders[i].Created != renders[j].Created {
			return renders[i].Created > renders[j].Created
		}
		return renders[i].Name < renders[j].Name
	})
	return renders, nil
}
