package ui

import (
	"stairtour/internal/locator"
	"stairtour/internal/placement"
)

// Region is one named, targetable area of the product screen.
type Region struct {
	Name  string
	Label string
	X, Y  int
	W, H  int
}

// Rect converts the region to placement geometry.
func (r Region) Rect() placement.Rect {
	return placement.Rect{Top: float64(r.Y), Left: float64(r.X), Width: float64(r.W), Height: float64(r.H)}
}

const (
	sidebarWidth  = 20
	minSidebarFor = 60
	headerHeight  = 3
	navItemHeight = 3
	exportWidth   = 14
	minCellWidth  = 8
	minCellHeight = 3
)

var navItems = []Region{
	{Name: "nav-staircase", Label: "Staircase"},
	{Name: "nav-actionplans", Label: "Action Plans"},
	{Name: "nav-ai", Label: "AI Chat"},
	{Name: "nav-notes", Label: "Notes"},
}

var gridItems = []Region{
	{Name: "strategy-wizard", Label: "Strategy Wizard"},
	{Name: "questionnaire", Label: "Questionnaire"},
	{Name: "staircase-actions", Label: "Staircase Actions"},
	{Name: "execution-room", Label: "Execution Room"},
	{Name: "how-far", Label: "How Far?"},
	{Name: "custom-plan", Label: "Custom Plan"},
}

// Layout lays out the product screen for a width x height area. Regions that
// do not fit are left out, so small terminals simply have fewer targets.
func Layout(width, height int) []Region {
	var regions []Region

	x0 := 0
	if width >= minSidebarFor {
		x0 = sidebarWidth
		for i, item := range navItems {
			y := i * navItemHeight
			if y+navItemHeight > height {
				break
			}
			item.X, item.Y, item.W, item.H = 0, y, sidebarWidth, navItemHeight
			regions = append(regions, item)
		}
	}

	mainWidth := width - x0
	if height < headerHeight || mainWidth < minCellWidth {
		return regions
	}

	landingWidth := mainWidth
	if mainWidth >= 2*exportWidth {
		landingWidth = mainWidth - exportWidth
		regions = append(regions, Region{
			Name: "export-btn", Label: "Export",
			X: width - exportWidth, Y: 0, W: exportWidth, H: headerHeight,
		})
	}
	regions = append(regions, Region{
		Name: "strategy-landing", Label: "Company Brief",
		X: x0, Y: 0, W: landingWidth, H: headerHeight,
	})

	rows := (len(gridItems) + 1) / 2
	cellHeight := (height - headerHeight) / rows
	cellWidth := mainWidth / 2
	if cellHeight < minCellHeight || cellWidth < minCellWidth {
		return regions
	}
	for i, item := range gridItems {
		item.X = x0 + (i%2)*cellWidth
		item.Y = headerHeight + (i/2)*cellHeight
		item.W, item.H = cellWidth, cellHeight
		regions = append(regions, item)
	}
	return regions
}

// register replaces the registry contents with regions.
func register(reg *locator.Registry, regions []Region) {
	reg.Reset()
	for _, r := range regions {
		reg.Add(r.Name, r.Rect())
	}
}
