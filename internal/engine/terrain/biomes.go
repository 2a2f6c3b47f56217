package terrain

import "math"

// Procedural is the analytic Oracle: every kind is a closed-form height field,
// so it is cheap enough to be queried several times per leg per frame.
type Procedural struct{}

// Height implements Oracle.
func (Procedural) Height(x, z float32, kind Kind) float32 {
	return float32(heightAt(float64(x), float64(z), kind))
}

func heightAt(x, z float64, kind Kind) float64 {
	switch kind {
	case KindIce:
		return iceHeight(x, z)
	case KindCanyon:
		return canyonHeight(x, z)
	case KindCrystal:
		return crystalHeight(x, z)
	case KindTech:
		return techHeight(x, z)
	case KindMoon:
		return moonHeight(x, z)
	case KindMars:
		return marsHeight(x, z)
	case KindObsidian:
		return obsidianHeight(x, z)
	case KindVolcano:
		return volcanoHeight(x, z)
	case KindOasis:
		return oasisHeight(x, z)
	case KindRain:
		return rainHeight(x, z)
	case KindWaterPlanet:
		return waterPlanetHeight(x, z)
	case KindGrass:
		return math.Sin(x*0.01+z*0.02) * 5.0
	case KindFlatDesert:
		return math.Sin(x*0.5) * math.Cos(z*0.5) * 0.05
	case KindAntarctica:
		return antarcticaHeight(x, z)
	case KindFlat:
		return 0
	default:
		return duneHeight(x, z)
	}
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func smoothstep(lo, hi, v float64) float64 {
	x := math.Max(0, math.Min(1, (v-lo)/(hi-lo)))
	return x * x * (3 - 2*x)
}

func hash2d(x, y float64) float64 {
	n := math.Sin(x*127.1+y*311.7) * 43758.5453
	return n - math.Floor(n)
}

// valueNoise is smoothed lattice noise in [0, 1].
func valueNoise(x, z float64) float64 {
	i := math.Floor(x)
	j := math.Floor(z)
	f := x - i
	g := z - j

	u := f * f * (3 - 2*f)
	v := g * g * (3 - 2*g)

	return lerp(
		lerp(hash2d(i, j), hash2d(i+1, j), u),
		lerp(hash2d(i, j+1), hash2d(i+1, j+1), u),
		v,
	)
}

// fbm sums octaves of valueNoise, normalized to [0, 1].
func fbm(x, z float64, octaves int, persistence, lacunarity float64) float64 {
	total, frequency, amplitude, maxValue := 0.0, 1.0, 1.0, 0.0
	for range octaves {
		total += valueNoise(x*frequency, z*frequency) * amplitude
		maxValue += amplitude
		amplitude *= persistence
		frequency *= lacunarity
	}
	return total / maxValue
}

func blockHash(x, z, blockSize float64) float64 {
	qx := math.Floor(x / blockSize)
	qz := math.Floor(z / blockSize)
	h := math.Sin(qx*12.9898+qz*78.233) * 43758.5453
	return h - math.Floor(h)
}

func duneHeight(x, z float64) float64 {
	warpX := x + math.Sin(z*0.035)*12.0
	warpZ := z + math.Sin(x*0.040)*8.0
	base := math.Sin(warpX*0.04 + warpZ*0.01)
	y := math.Pow(base*0.5+0.5, 2.5) * 5.0
	y += math.Sin(warpX*0.13+warpZ*0.11) * 1.2
	y += math.Sin(x*0.37-z*0.23) * 0.35
	return y
}

func iceHeight(x, z float64) float64 {
	warpX := x + math.Sin(z*0.025)*25.0
	warpZ := z + math.Sin(x*0.025)*20.0
	y := math.Sin(warpX*0.03+warpZ*0.02) * 5.0
	rX := x*0.12 + z*0.08
	rZ := z*0.12 - x*0.08
	ridge1 := math.Pow(math.Abs(math.Sin(rX)), 4)
	ridge2 := math.Pow(math.Abs(math.Sin(rZ)), 4)
	y += (ridge1 + ridge2) * 2.5
	y += math.Sin(x*0.4) * math.Cos(z*0.4) * 0.4
	return y
}

func canyonHeight(x, z float64) float64 {
	warpX := x + math.Sin(z*0.012)*30.0
	warpZ := z + math.Cos(x*0.015)*30.0
	const scale = 0.012
	base := math.Sin(warpX*scale) * math.Cos(warpZ*scale)
	y := base * base * base * 22.0
	y += math.Sin(y*1.5) * 1.2
	y += math.Sin(x*0.3) * math.Cos(z*0.24) * 0.8
	return y
}

func crystalHeight(x, z float64) float64 {
	val := blockHash(x, z, 15)
	var h float64
	switch {
	case val > 0.85:
		h = 8
	case val > 0.6:
		h = 4
	case val > 0.4:
		h = -2
	}
	return h + math.Sin(x*0.02+z*0.02)*2.0
}

func techHeight(x, z float64) float64 {
	y1 := math.Sin(x*0.3) * math.Cos(z*0.3) * 1.5
	y2 := math.Sin(x*0.8+2) * math.Sin(z*0.5) * 0.5
	return math.Max(-2, y1+y2)
}

func moonHeight(x, z float64) float64 {
	y := math.Sin(x*0.02+z*0.015) * math.Cos(z*0.025-x*0.01) * 8.0
	y += math.Sin(x*0.06) * math.Cos(z*0.07) * 3.5
	y += math.Sin(x*0.25+1.5) * math.Sin(z*0.22+2.0) * 1.0
	crater := math.Sin(x*0.07) + math.Cos(z*0.085)
	if crater > 1.3 {
		val := crater - 1.3
		y -= val * val * 20.0
		if val < 0.2 {
			y += val * 3.0
		}
	}
	return y
}

func marsHeight(x, z float64) float64 {
	y := fbm(x*0.01, z*0.01, 3, 0.5, 2) * 15.0
	ridge := 1.0 - math.Abs(fbm(x*0.03, z*0.03, 2, 0.5, 2)*2-1)
	y += ridge * ridge * 10.0
	const duneFreq, duneAmp = 0.08, 1.2
	mask := smoothstep(0.3, 1.0, fbm(x*0.005, z*0.005, 2, 0.5, 2))
	shape := math.Sin(x*duneFreq + z*duneFreq*0.5 + fbm(x*0.02, z*0.02, 2, 0.5, 2)*2)
	y += math.Pow(shape*0.5+0.5, 1.5) * duneAmp * mask
	y += valueNoise(x*0.5, z*0.5) * 0.5
	return y
}

func obsidianHeight(x, z float64) float64 {
	n1 := math.Abs(math.Sin(x*0.05+z*0.02) + math.Cos(z*0.05+x*0.03))
	y := n1 * n1 * 15.0
	y += math.Abs(math.Sin(x*0.2)*math.Cos(z*0.2)) * 5.0
	fissure := math.Sin(x*0.08) + math.Cos(z*0.09)
	if fissure < -1.2 {
		y -= 12.0 * (math.Abs(fissure) - 1.2)
	}
	if math.Sin(x*0.5+100)*math.Cos(z*0.5+100) > 0.95 {
		y += 8.0
	}
	y += math.Sin(x*0.02) * 5.0
	return y
}

func volcanoHeight(x, z float64) float64 {
	y := math.Sin(x*0.03) * math.Cos(z*0.04) * 2.0
	y += math.Sin(x*0.8) * math.Cos(z*0.9) * 0.15
	wx := x*0.08 + math.Sin(z*0.05)*5.0
	wz := z*0.08 + math.Cos(x*0.05)*5.0
	ridge := math.Abs(math.Sin(wx) + math.Cos(wz))
	if ridge < 0.25 {
		y -= (0.25 - ridge) * 4.0 * 3.5
	}
	rock := math.Sin(x*0.6+z*0.4) * math.Cos(x*0.3-z*0.5)
	if rock > 0.92 {
		y += 1.5 + (rock-0.92)*5.0
	}
	return y
}

func oasisHeight(x, z float64) float64 {
	slope := smoothstep(-30, 40, x)
	y := lerp(-6, 8, slope)
	if duneAmp := slope * 6.0; duneAmp > 0.1 {
		warpX := x + math.Sin(z*0.03)*10.0
		n := math.Sin(warpX*0.04 + z*0.02)
		y += (n*0.5 + 0.5) * (n*0.5 + 0.5) * duneAmp
	}
	if rockZone := math.Max(0, 1.0-math.Abs((x-10)/20.0)); rockZone > 0 {
		if rock := math.Sin(x*0.4) * math.Cos(z*0.5); rock > 0.85 {
			y += (rock - 0.85) * 20.0 * rockZone
		}
	}
	if x < -10 {
		y += math.Sin(x*0.2) * math.Cos(z*0.2)
	}
	const waterLevel = -2.5
	if d := math.Abs(y - waterLevel); d < 1.0 && x > -20 {
		y = lerp(y, waterLevel, 0.4*(1.0-d))
	}
	return y
}

func rainHeight(x, z float64) float64 {
	y := (math.Sin(x*0.015) + math.Cos(z*0.018)) * 4.0
	y += math.Sin(x*0.03+z*0.04) * 2.0
	y += fbm(x*0.08, z*0.08, 2, 0.5, 2) * 2.0
	return y
}

// waterPlanetHeight is a shallow uneven seabed; the large waves are visual only.
func waterPlanetHeight(x, z float64) float64 {
	return valueNoise(x*0.05, z*0.05)*0.5 - 1.5
}

func antarcticaHeight(x, z float64) float64 {
	ridge := math.Abs(math.Sin(x*0.03) * math.Cos(z*0.03))
	y := math.Pow(1.0-ridge, 3) * 12.0
	if blockHash(x, z, 20) > 0.7 {
		y += 4.0
	}
	y += (math.Sin(x*0.4) + math.Cos(z*0.4)) * 0.3
	return y
}
