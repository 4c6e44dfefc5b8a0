package topology

import "math"

// Layout holds the fixed geometry used to place nodes. Units are abstract
// canvas pixels; the terminal view only uses them for ordering.
type Layout struct {
	ColumnWidth       float64 // width of one zone column
	InstanceSpacing   float64 // vertical distance between instance rows
	GroupSpacing      float64 // gap between a tier's last row and the next tier's load balancer
	InstancesPerRow   int
	HorizontalSpacing float64 // distance between instances in the same row
	AZSpacing         float64 // extra gap between zone columns
	BaseOffset        float64 // x of the first zone column
	GroupPadding      float64 // added to every computed group height
	BalancerToGroup   float64 // load balancer row to zone group row
	GroupToInstance   float64 // zone group row to first instance row
}

// DefaultLayout returns the stock layout
func DefaultLayout() Layout {
	return Layout{
		ColumnWidth:       400,
		InstanceSpacing:   120,
		GroupSpacing:      300,
		InstancesPerRow:   2,
		HorizontalSpacing: 350,
		AZSpacing:         300,
		BaseOffset:        400,
		GroupPadding:      150,
		BalancerToGroup:   200,
		GroupToInstance:   100,
	}
}

func (l Layout) perRow() int {
	if l.InstancesPerRow < 1 {
		return 1
	}
	return l.InstancesPerRow
}

// columnX returns the x coordinate of the zone column at index i
func (l Layout) columnX(i int) float64 {
	return l.BaseOffset + float64(i)*(l.ColumnWidth+l.AZSpacing)
}

// centerX returns the x coordinate centered over n zone columns. With no
// zones it sits half a column left of the first column.
func (l Layout) centerX(n int) float64 {
	return l.BaseOffset + float64(n-1)*(l.ColumnWidth+l.AZSpacing)/2
}

// GroupHeight returns the vertical extent of a tier whose fullest zone
// holds maxInZone instances
func (l Layout) GroupHeight(maxInZone int) float64 {
	rows := math.Ceil(float64(maxInZone) / float64(l.perRow()))
	return rows*l.InstanceSpacing + l.GroupPadding
}

// instancePosition places the k-th instance of a zone column
func (l Layout) instancePosition(columnX, startY float64, k int) (float64, float64) {
	row := k / l.perRow()
	col := k % l.perRow()
	x := columnX + float64(col)*l.HorizontalSpacing - l.HorizontalSpacing/2
	y := startY + float64(row)*l.InstanceSpacing
	return x, y
}
