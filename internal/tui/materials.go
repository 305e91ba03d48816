package tui

import (
	"os"
	"path/filepath"
	"sort"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"crystalview/internal/config"
	"crystalview/internal/crystal"
)

// materialItem is a sidebar entry: a suggested material or a local file.
type materialItem struct {
	title, desc string
	id          string
	path        string
}

func (i materialItem) Title() string       { return i.title }
func (i materialItem) Description() string { return i.desc }
func (i materialItem) FilterValue() string { return i.title + " " + i.id }

// refreshItems lists the suggested materials followed by structure files
// found in the model's directory.
func (m *Model) refreshItems(materials []config.Material) {
	var items []list.Item
	for _, mat := range materials {
		title := mat.Name
		if title == "" {
			title = mat.ID
		}
		items = append(items, materialItem{title: title, desc: mat.ID, id: mat.ID})
	}

	entries, err := os.ReadDir(m.dir)
	if err != nil {
		m.status = "read dir error: " + err.Error()
		m.statusErr = true
	}
	var files []list.Item
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !crystal.Supported(name) {
			continue
		}
		files = append(files, materialItem{title: name, desc: "local file", path: filepath.Join(m.dir, name)})
	}
	sort.SliceStable(files, func(i, j int) bool { return files[i].(materialItem).title < files[j].(materialItem).title })

	m.items = append(items, files...)
	m.l.SetItems(m.items)
}

// selectItem fetches the highlighted sidebar entry.
func (m Model) selectItem() (Model, tea.Cmd) {
	it, ok := m.l.SelectedItem().(materialItem)
	if !ok {
		return m, nil
	}
	if it.path != "" {
		return m.fetchFile(it.path, it.title)
	}
	m.ti.SetValue(it.id)
	return m.fetch(it.id)
}
