// Package planview renders a resolved plan as a terminal tree, one branch
// per manifest rank. Branches are always expanded; nodes cannot be
// collapsed.
package planview

import (
	"fmt"

	"github.com/gdamore/tcell"
	"github.com/rivo/tview"

	"github.com/pkgforge/pkgresolve/internal/pkgresolve"
)

// Viewer wraps the tview application showing one resolved Plan.
type Viewer struct {
	app  *tview.Application
	tree *tview.TreeView
}

// New returns an unstarted Viewer.
func New() *Viewer {
	return &Viewer{app: tview.NewApplication()}
}

// Run builds the tree for plan and blocks until the user quits (q or
// Ctrl-C).
func (v *Viewer) Run(plan pkgresolve.Plan) error {
	root := tview.NewTreeNode("install plan").
		SetColor(tcell.ColorYellow)

	byRank := make(map[int][]pkgresolve.Package)
	var ranks []int
	seenRank := make(map[int]bool)
	for _, pkg := range plan {
		byRank[pkg.ManifestRank] = append(byRank[pkg.ManifestRank], pkg)
		if !seenRank[pkg.ManifestRank] {
			seenRank[pkg.ManifestRank] = true
			ranks = append(ranks, pkg.ManifestRank)
		}
	}

	for _, rank := range ranks {
		rankNode := tview.NewTreeNode(fmt.Sprintf("manifest rank %d", rank)).
			SetSelectable(false).
			SetColor(tcell.ColorAqua)
		for _, pkg := range byRank[rank] {
			rankNode.AddChild(packageNode(pkg))
		}
		root.AddChild(rankNode)
	}

	v.tree = tview.NewTreeView().
		SetRoot(root).
		SetCurrentNode(root)

	v.tree.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Rune() == 'q' {
			v.app.Stop()
			return nil
		}
		return event
	})

	return v.app.SetRoot(v.tree, true).SetFocus(v.tree).Run()
}

func packageNode(pkg pkgresolve.Package) *tview.TreeNode {
	kind := "source"
	if pkg.IsBinary() {
		kind = "binary"
	}
	label := fmt.Sprintf("%s (%s)", pkg.Token(), kind)
	return tview.NewTreeNode(label).SetColor(tcell.ColorWhite)
}
