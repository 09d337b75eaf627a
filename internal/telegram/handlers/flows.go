package handlers

import (
	"fmt"
	"math"

	"github.com/legalfox/legalfox-backend/internal/calc"
)

// Step is a single question of a calculator dialogue.
type Step struct {
	Field  string
	Prompt string
}

// Flow describes one calculator: the ordered questions and the final
// computation over the collected answers.
type Flow struct {
	Name    string
	Title   string
	Steps   []Step
	Compute func(values map[string]float64) string
}

// roundUpTenth rounds a volume up to one decimal, the way material is
// actually bought.
func roundUpTenth(v float64) float64 {
	return math.Ceil(v*10) / 10
}

func volumeSummary(title string, q calc.Quantity) string {
	return fmt.Sprintf(
		"📐 %s\n\nОбъём по размерам: %.2f м³\nС запасом %.0f%%: %.2f м³\n\nРекомендуем заказать: %.1f м³",
		title, q.Base, calc.DefaultReserve, q.WithReserve, roundUpTenth(q.WithReserve),
	)
}

// Flows returns the calculators keyed by flow name.
func Flows() map[string]*Flow {
	return map[string]*Flow{
		"concrete": {
			Name:  "concrete",
			Title: "Бетон",
			Steps: []Step{
				{Field: "length", Prompt: "Введите длину заливки в метрах:"},
				{Field: "width", Prompt: "Введите ширину заливки в метрах:"},
				{Field: "height", Prompt: "Введите высоту (толщину) заливки в метрах:"},
			},
			Compute: func(values map[string]float64) string {
				q := calc.ConcreteVolume(values["length"], values["width"], values["height"], calc.DefaultReserve)
				return volumeSummary("Бетон", q)
			},
		},
		"screed": {
			Name:  "screed",
			Title: "Стяжка",
			Steps: []Step{
				{Field: "area", Prompt: "Введите площадь помещения в м²:"},
				{Field: "thickness", Prompt: "Введите толщину стяжки в сантиметрах:"},
			},
			Compute: func(values map[string]float64) string {
				q := calc.ScreedVolume(values["area"], values["thickness"], calc.DefaultReserve)
				return volumeSummary("Стяжка", q)
			},
		},
		"plaster": {
			Name:  "plaster",
			Title: "Штукатурка",
			Steps: []Step{
				{Field: "area", Prompt: "Введите площадь стен в м²:"},
				{Field: "thickness", Prompt: "Введите толщину слоя в миллиметрах:"},
			},
			Compute: func(values map[string]float64) string {
				q := calc.PlasterVolume(values["area"], values["thickness"], calc.DefaultReserve)
				return volumeSummary("Штукатурка", q)
			},
		},
		"tile": {
			Name:  "tile",
			Title: "Плитка",
			Steps: []Step{
				{Field: "area", Prompt: "Введите площадь укладки в м²:"},
				{Field: "tile_width", Prompt: "Введите ширину плитки в сантиметрах:"},
				{Field: "tile_height", Prompt: "Введите высоту плитки в сантиметрах:"},
			},
			Compute: func(values map[string]float64) string {
				count, withReserve := calc.TileCount(values["area"], values["tile_width"], values["tile_height"], calc.DefaultReserve)
				return fmt.Sprintf(
					"🔲 Плитка\n\nПо площади: %d шт.\nС запасом %.0f%%: %d шт.\n\nРекомендуем купить: %d шт.",
					count, calc.DefaultReserve, withReserve, withReserve,
				)
			},
		},
	}
}
