package terrain

// BuildHeightmap samples src on a regular grid centered at (centerX, centerZ).
// cells is the number of samples per axis. Queries outside the grid fall
// through to src, so the result is still a total Oracle.
func BuildHeightmap(src Oracle, kind Kind, centerX, centerZ float32, cells int, cellSize float32) *Heightmap {
	if cells < 2 {
		cells = 2
	}
	half := float32(cells-1) * cellSize / 2
	originX := centerX - half
	originZ := centerZ - half

	altitudes := make([][]float32, cells)
	for x := range cells {
		altitudes[x] = make([]float32, cells)
		for z := range cells {
			wx := originX + float32(x)*cellSize
			wz := originZ + float32(z)*cellSize
			altitudes[x][z] = src.Height(wx, wz, kind)
		}
	}

	return &Heightmap{
		Altitudes: altitudes,
		CellsX:    cells,
		CellsZ:    cells,
		CellSize:  cellSize,
		OriginX:   originX,
		OriginZ:   originZ,
		Kind:      kind,
		fallback:  src,
	}
}

// Contains reports whether (worldX, worldZ) lies inside the sampled area.
func (h *Heightmap) Contains(worldX, worldZ float32) bool {
	maxX := h.OriginX + float32(h.CellsX-1)*h.CellSize
	maxZ := h.OriginZ + float32(h.CellsZ-1)*h.CellSize
	return worldX >= h.OriginX && worldX <= maxX && worldZ >= h.OriginZ && worldZ <= maxZ
}

// Height implements Oracle. Inside the grid it bilinearly interpolates the
// cached samples; outside, or for a different kind, it asks the source.
func (h *Heightmap) Height(worldX, worldZ float32, kind Kind) float32 {
	if kind != h.Kind || !h.Contains(worldX, worldZ) {
		if h.fallback == nil {
			return 0
		}
		return h.fallback.Height(worldX, worldZ, kind)
	}
	return h.GetInterpolatedHeight(worldX, worldZ)
}

// GetInterpolatedHeight returns the bilinear height at a world position,
// clamping to the grid edge.
func (h *Heightmap) GetInterpolatedHeight(worldX, worldZ float32) float32 {
	cellFX := (worldX - h.OriginX) / h.CellSize
	cellFZ := (worldZ - h.OriginZ) / h.CellSize

	cellX := int(cellFX)
	cellZ := int(cellFZ)

	// Clamp to valid range
	if cellX < 0 {
		cellX = 0
	}
	if cellZ < 0 {
		cellZ = 0
	}
	if cellX >= h.CellsX-1 {
		cellX = h.CellsX - 2
	}
	if cellZ >= h.CellsZ-1 {
		cellZ = h.CellsZ - 2
	}

	// Fractional position within cell (0-1)
	fracX := clampf(cellFX-float32(cellX), 0, 1)
	fracZ := clampf(cellFZ-float32(cellZ), 0, 1)

	sw := h.Altitudes[cellX][cellZ]
	se := h.Altitudes[cellX+1][cellZ]
	nw := h.Altitudes[cellX][cellZ+1]
	ne := h.Altitudes[cellX+1][cellZ+1]

	south := sw*(1-fracX) + se*fracX
	north := nw*(1-fracX) + ne*fracX
	return south*(1-fracZ) + north*fracZ
}

func clampf(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// Cached returns a Heightmap over src when cells > 0, and src itself
// otherwise.
func Cached(src Oracle, kind Kind, centerX, centerZ float32, cells int, cellSize float32) Oracle {
	if cells <= 0 || cellSize <= 0 {
		return src
	}
	return BuildHeightmap(src, kind, centerX, centerZ, cells, cellSize)
}
