/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package shading

import "fmt"

// Vertex is one Gouraud mesh vertex: a position and a color in however many
// components the shading's color space (or its parametric Function) needs.
type Vertex struct {
	X, Y  float64
	Color []float64
}

// Triangle is three Gouraud vertices sharing one flat/interpolated face.
type Triangle [3]Vertex

// MeshParams carries the shading dictionary fields the type 4/5 decoders
// need, independent of how the caller represents the PDF object graph.
type MeshParams struct {
	BitsPerCoordinate int
	BitsPerComponent  int
	BitsPerFlag       int // type 4 only
	VerticesPerRow    int // type 5 only
	NumColorValues    int // color space channel count, or 1 if a Function is present
	Decode            []float64
}

func (p MeshParams) xRange() (float64, float64) { return p.Decode[0], p.Decode[1] }
func (p MeshParams) yRange() (float64, float64) { return p.Decode[2], p.Decode[3] }
func (p MeshParams) colorRange(i int) (float64, float64) {
	return p.Decode[4+2*i], p.Decode[4+2*i+1]
}

func (p MeshParams) readVertex(r *BitReader) (Vertex, bool) {
	xRaw, ok := r.ReadBits(p.BitsPerCoordinate)
	if !ok {
		return Vertex{}, false
	}
	yRaw, ok := r.ReadBits(p.BitsPerCoordinate)
	if !ok {
		return Vertex{}, false
	}
	xlo, xhi := p.xRange()
	ylo, yhi := p.yRange()
	v := Vertex{
		X:     decodeSample(xRaw, p.BitsPerCoordinate, xlo, xhi),
		Y:     decodeSample(yRaw, p.BitsPerCoordinate, ylo, yhi),
		Color: make([]float64, p.NumColorValues),
	}
	for i := 0; i < p.NumColorValues; i++ {
		cRaw, ok := r.ReadBits(p.BitsPerComponent)
		if !ok {
			return Vertex{}, false
		}
		lo, hi := p.colorRange(i)
		v.Color[i] = decodeSample(cRaw, p.BitsPerComponent, lo, hi)
	}
	return v, true
}

// DecodeType4 decodes a free-form Gouraud-shaded triangle mesh (shading
// type 4). The stream is a flat sequence of (flag, vertex) records: a flag
// of 0 starts a new, unconnected triangle and is read three times in a row
// to gather all three vertices; a flag of 1 or 2 starts a new triangle that
// reuses two vertices of the immediately preceding triangle (1 reuses its
// second and third vertex, 2 its first and third) and reads only the one
// new vertex. Every vertex's data — flag, coordinates, color — is padded to
// a byte boundary before the next vertex starts, per the PDF spec's type 4
// stream format.
func DecodeType4(data []byte, p MeshParams) ([]Triangle, error) {
	r := NewBitReader(data)

	type flaggedVertex struct {
		flag uint8
		v    Vertex
	}
	var records []flaggedVertex
	for r.Remaining() >= p.BitsPerFlag {
		flagRaw, ok := r.ReadBits(p.BitsPerFlag)
		if !ok {
			break
		}
		v, ok := p.readVertex(r)
		if !ok {
			return nil, fmt.Errorf("shading: truncated type 4 vertex data")
		}
		r.AlignByte()
		records = append(records, flaggedVertex{uint8(flagRaw), v})
	}

	var triangles []Triangle
	for i := 0; i < len(records); {
		if records[i].flag != 0 {
			return nil, fmt.Errorf("shading: type 4 stream must start a triangle with flag 0")
		}
		if i+2 >= len(records) {
			return nil, fmt.Errorf("shading: truncated type 4 triangle at record %d", i)
		}
		va, vb, vc := records[i].v, records[i+1].v, records[i+2].v
		triangles = append(triangles, Triangle{va, vb, vc})
		i += 3

		for i < len(records) && records[i].flag != 0 {
			prev := triangles[len(triangles)-1]
			var na, nb Vertex
			if records[i].flag == 1 {
				na, nb = prev[1], prev[2]
			} else {
				na, nb = prev[0], prev[2]
			}
			triangles = append(triangles, Triangle{na, nb, records[i].v})
			i++
		}
	}

	return triangles, nil
}

// DecodeType5 decodes a lattice-form Gouraud-shaded triangle mesh (shading
// type 5): rows of VerticesPerRow vertices with no flags or byte-alignment,
// two triangles emitted per grid cell between consecutive rows.
func DecodeType5(data []byte, p MeshParams) ([]Triangle, error) {
	if p.VerticesPerRow < 2 {
		return nil, fmt.Errorf("shading: type 5 VerticesPerRow must be >= 2, got %d", p.VerticesPerRow)
	}

	r := NewBitReader(data)
	var vertices []Vertex
	for r.Remaining() >= p.BitsPerCoordinate*2+p.BitsPerComponent*p.NumColorValues {
		v, ok := p.readVertex(r)
		if !ok {
			break
		}
		vertices = append(vertices, v)
	}

	rows := len(vertices) / p.VerticesPerRow
	if rows < 2 {
		return nil, fmt.Errorf("shading: type 5 mesh needs at least 2 rows, got %d", rows)
	}

	var triangles []Triangle
	for row := 0; row < rows-1; row++ {
		for col := 0; col < p.VerticesPerRow-1; col++ {
			a := vertices[row*p.VerticesPerRow+col]
			b := vertices[row*p.VerticesPerRow+col+1]
			c := vertices[(row+1)*p.VerticesPerRow+col]
			d := vertices[(row+1)*p.VerticesPerRow+col+1]
			triangles = append(triangles, Triangle{a, b, c})
			triangles = append(triangles, Triangle{b, d, c})
		}
	}
	return triangles, nil
}

// ColorAt returns the barycentric-interpolated color at (x, y) within t, and
// false if the point lies outside the triangle.
func (t Triangle) ColorAt(x, y float64) ([]float64, bool) {
	a, b, c := t[0], t[1], t[2]
	denom := (b.Y-c.Y)*(a.X-c.X) + (c.X-b.X)*(a.Y-c.Y)
	if denom == 0 {
		return nil, false
	}
	wa := ((b.Y-c.Y)*(x-c.X) + (c.X-b.X)*(y-c.Y)) / denom
	wb := ((c.Y-a.Y)*(x-c.X) + (a.X-c.X)*(y-c.Y)) / denom
	wc := 1 - wa - wb
	const eps = -1e-9
	if wa < eps || wb < eps || wc < eps {
		return nil, false
	}
	n := len(a.Color)
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = wa*a.Color[i] + wb*b.Color[i] + wc*c.Color[i]
	}
	return out, true
}
