// Package prompt holds the embedded prompt templates for the recommendation
// agents.
package prompt

import (
	_ "embed"
	"strings"
	"text/template"

	contractx "github.com/storewise/recommender/agent/contract"
)

var (
	//go:embed template/customer.txt
	customerRaw string

	//go:embed template/product.txt
	productRaw string

	//go:embed template/engine.txt
	engineRaw string
)

var funcs = template.FuncMap{
	"join": func(items []string) string {
		if len(items) == 0 {
			return "None"
		}
		return strings.Join(items, ", ")
	},
	"inc": func(i int) int { return i + 1 },
}

var (
	customerTmpl = template.Must(template.New("customer").Funcs(funcs).Parse(strings.TrimSpace(customerRaw)))
	productTmpl  = template.Must(template.New("product").Funcs(funcs).Parse(strings.TrimSpace(productRaw)))
	engineTmpl   = template.Must(template.New("engine").Funcs(funcs).Parse(strings.TrimSpace(engineRaw)))
)

type CustomerData struct {
	Customer          contractx.Customer
	PersonalityWeight float64
	HistoryWeight     float64
	ExplorationRate   float64
	ContextAwareness  bool
}

type ProductData struct {
	Product          contractx.Product
	Related          []contractx.Product
	SimilarityWeight float64
	PopularityWeight float64
	CategoryWeight   float64
	SeasonalityAware bool
}

type EngineData struct {
	Customer            contractx.CustomerInsight
	Products            []contractx.ProductInsight
	Catalog             []contractx.Product
	CustomerAgentWeight float64
	ProductAgentWeight  float64
	NoveltyFactor       float64
	DiversityFactor     float64
	ConfidenceThreshold float64
}

func RenderCustomer(data CustomerData) (string, error) {
	return render(customerTmpl, data)
}

func RenderProduct(data ProductData) (string, error) {
	return render(productTmpl, data)
}

func RenderEngine(data EngineData) (string, error) {
	return render(engineTmpl, data)
}

func render(tmpl *template.Template, data any) (string, error) {
	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}
