// Package geo содержит расчёт расстояния и оценку стоимости доставки.
package geo

import (
	"math"

	"github.com/foodhive/client-shell/internal/model"
)

const earthRadiusKm = 6371

// Тариф доставки в франках КФА: базовая ставка плюс стоимость километра.
const (
	fraisDeBase = 1000
	coutParKm   = 200
)

// Distance возвращает расстояние между двумя точками в километрах по
// формуле гаверсинусов.
func Distance(a, b model.Coordinates) float64 {
	lat1 := degToRad(a.Latitude)
	lon1 := degToRad(a.Longitude)
	lat2 := degToRad(b.Latitude)
	lon2 := degToRad(b.Longitude)

	deltaLat := lat2 - lat1
	deltaLon := lon2 - lon1

	h := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusKm * c
}

// FraisLivraison оценивает стоимость доставки от ресторана до клиента.
// Без обеих координат оценка невозможна и возвращается 0.
func FraisLivraison(restaurant, client *model.Coordinates) float64 {
	if restaurant == nil || client == nil {
		return 0
	}
	return fraisDeBase + Distance(*restaurant, *client)*coutParKm
}

func degToRad(deg float64) float64 {
	return deg * (math.Pi / 180)
}
