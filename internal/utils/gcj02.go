package utils

import "math"

// WGS-84 to GCJ-02 datum conversion. Raw device GPS is WGS-84; the map
// provider's tiles use the GCJ-02 reference frame, so positions must be
// shifted before display or comparison against map coordinates. The
// correction is a fixed empirical polynomial; outside the covered
// region the transform is the identity.
const (
	// Krasovsky ellipsoid semi-major axis
	gcjA = 6378245.0
	// Krasovsky ellipsoid first eccentricity squared
	gcjEE = 0.00669342162296594323
)

// WGS84ToGCJ02 converts a WGS-84 coordinate to GCJ-02
func WGS84ToGCJ02(lat, lng float64) (float64, float64) {
	if outOfRegion(lat, lng) {
		return lat, lng
	}

	dLat := transformLat(lng-105.0, lat-35.0)
	dLng := transformLng(lng-105.0, lat-35.0)

	radLat := lat / 180.0 * math.Pi
	magic := math.Sin(radLat)
	magic = 1 - gcjEE*magic*magic
	sqrtMagic := math.Sqrt(magic)

	dLat = (dLat * 180.0) / ((gcjA * (1 - gcjEE)) / (magic * sqrtMagic) * math.Pi)
	dLng = (dLng * 180.0) / (gcjA / sqrtMagic * math.Cos(radLat) * math.Pi)

	return lat + dLat, lng + dLng
}

// GCJ02ToWGS84 converts a GCJ-02 coordinate back to WGS-84. The inverse
// is approximate: it applies the forward offset computed at the GCJ-02
// position.
func GCJ02ToWGS84(lat, lng float64) (float64, float64) {
	if outOfRegion(lat, lng) {
		return lat, lng
	}

	dLat := transformLat(lng-105.0, lat-35.0)
	dLng := transformLng(lng-105.0, lat-35.0)

	radLat := lat / 180.0 * math.Pi
	magic := math.Sin(radLat)
	magic = 1 - gcjEE*magic*magic
	sqrtMagic := math.Sqrt(magic)

	dLat = (dLat * 180.0) / ((gcjA * (1 - gcjEE)) / (magic * sqrtMagic) * math.Pi)
	dLng = (dLng * 180.0) / (gcjA / sqrtMagic * math.Cos(radLat) * math.Pi)

	return lat - dLat, lng - dLng
}

func outOfRegion(lat, lng float64) bool {
	if lng < 72.004 || lng > 137.8347 {
		return true
	}
	if lat < 0.8293 || lat > 55.8271 {
		return true
	}
	return false
}

func transformLat(x, y float64) float64 {
	ret := -100.0 + 2.0*x + 3.0*y + 0.2*y*y + 0.1*x*y
	ret += 0.2 * math.Sqrt(math.Abs(x))
	ret += (20.0*math.Sin(6.0*x*math.Pi) + 20.0*math.Sin(2.0*x*math.Pi)) * 2.0 / 3.0
	ret += (20.0*math.Sin(y*math.Pi) + 40.0*math.Sin(y/3.0*math.Pi)) * 2.0 / 3.0
	ret += (160.0*math.Sin(y/12.0*math.Pi) + 320.0*math.Sin(y*math.Pi/30.0)) * 2.0 / 3.0
	return ret
}

func transformLng(x, y float64) float64 {
	ret := 300.0 + x + 2.0*y + 0.1*x*x + 0.1*x*y
	ret += 0.1 * math.Sqrt(math.Abs(x))
	ret += (20.0*math.Sin(6.0*x*math.Pi) + 20.0*math.Sin(2.0*x*math.Pi)) * 2.0 / 3.0
	ret += (20.0*math.Sin(x*math.Pi) + 40.0*math.Sin(x/3.0*math.Pi)) * 2.0 / 3.0
	ret += (150.0*math.Sin(x/12.0*math.Pi) + 300.0*math.Sin(x/30.0*math.Pi)) * 2.0 / 3.0
	return ret
}
