package geom

import (
	"fmt"
	"strings"
)

// Format renders a tree for diagnostics: indented, one line per node,
// parameters spelled out.
func Format(n *Node) string {
	var b strings.Builder
	formatNode(&b, n, 0)
	return b.String()
}

func formatNode(b *strings.Builder, n *Node, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	if n == nil {
		b.WriteString("<nil>\n")
		return
	}
	b.WriteString(describe(n))
	b.WriteByte('\n')
	for _, c := range n.children {
		formatNode(b, c, depth+1)
	}
}

func describe(n *Node) string {
	switch d := n.data.(type) {
	case nil:
		return "empty"
	case BoxData:
		return fmt.Sprintf("box size=(%v, %v, %v)", d.Size.X, d.Size.Y, d.Size.Z)
	case SphereData:
		return fmt.Sprintf("sphere radius=%v", d.Radius)
	case CylinderData:
		return fmt.Sprintf("cylinder height=%v radius=%v", d.Height, d.Radius)
	case RectData:
		return fmt.Sprintf("rect size=(%v, %v)", d.Size.X, d.Size.Y)
	case CircleData:
		return fmt.Sprintf("circle radius=%v", d.Radius)
	case PolygonData:
		pts := make([]string, len(d.Points))
		for i, p := range d.Points {
			pts[i] = fmt.Sprintf("(%v, %v)", p.X, p.Y)
		}
		return "polygon points=[" + strings.Join(pts, " ") + "]"
	case BooleanData:
		return d.Op.String()
	case TransformData:
		m := d.Matrix.M
		return fmt.Sprintf("transform matrix=[%v %v %v %v; %v %v %v %v; %v %v %v %v]",
			m[0], m[1], m[2], m[3], m[4], m[5], m[6], m[7], m[8], m[9], m[10], m[11])
	case Transform2DData:
		m := d.Matrix.M
		return fmt.Sprintf("transform matrix=[%v %v %v; %v %v %v]",
			m[0], m[1], m[2], m[3], m[4], m[5])
	case HullData:
		return "hull"
	case MaterializedData:
		return fmt.Sprintf("materialized key=%s", truncateKey(string(d.Key)))
	case OffsetData:
		return fmt.Sprintf("offset delta=%v", d.Delta)
	case ProjectionData:
		if d.Slice {
			return fmt.Sprintf("slice z=%v", d.Z)
		}
		return "project"
	case ExtrudeData:
		return fmt.Sprintf("extrude height=%v", d.Height)
	case RevolveData:
		return fmt.Sprintf("revolve angle=%v", d.Angle)
	case MaterialData:
		return fmt.Sprintf("material name=%q color=%q", d.Material.Name, d.Material.Color)
	case TrimData:
		p := d.Plane
		return fmt.Sprintf("trim normal=(%v, %v, %v) offset=%v",
			p.Normal.X, p.Normal.Y, p.Normal.Z, p.Offset)
	default:
		return fmt.Sprintf("unknown(%T)", n.data)
	}
}

const maxPrintedKeyLen = 48

func truncateKey(k string) string {
	if len(k) <= maxPrintedKeyLen {
		return k
	}
	return k[:maxPrintedKeyLen] + "..."
}
