// Package display formats predictions and form text for the user.
package display

import (
	"fmt"

	"github.com/nekruzvatanshoev/carprice/pkg/carprice/dal"
)

// Language selects the text set.
type Language string

const (
	French  Language = "fr"
	English Language = "en"
)

// ParseLanguage accepts "fr" or "en".
func ParseLanguage(s string) (Language, error) {
	switch Language(s) {
	case French, English:
		return Language(s), nil
	default:
		return "", fmt.Errorf("unsupported display language: %q", s)
	}
}

// Texts holds the user-facing strings of the form.
type Texts struct {
	Title         string
	Description   string
	Header        string
	FieldLabels   map[string]string
	Button        string
	ResultsHeader string
	PriceLabel    string
	CategoryLabel string
	Affordable    string
	Expensive     string
}

var texts = map[Language]Texts{
	French: {
		Title: "Prédiction du prix des voitures",
		Description: "Bienvenue dans cette application de prédiction du prix des voitures !\n\n" +
			"Cette application vous permet d'estimer le prix d'une voiture en fonction de ses caractéristiques.\n" +
			"Il vous suffit de remplir les informations ci-dessous et d'appuyer sur le bouton Prédire.\n\n" +
			"L'algorithme utilisé repose sur un modèle de régression et un modèle de classification\n" +
			"qui permettent d'estimer à la fois le prix de la voiture et sa catégorie de prix (abordable ou chère).",
		Header: "Caractéristiques du véhicule",
		FieldLabels: map[string]string{
			dal.FieldMake:       "Marque",
			dal.FieldFuelType:   "Type de carburant",
			dal.FieldNumDoors:   "Nombre de portes",
			dal.FieldBodyStyle:  "Style de carrosserie",
			dal.FieldHorsepower: "Puissance (ch)",
			dal.FieldCityMPG:    "Consommation urbaine (mpg)",
		},
		Button:        "Prédire",
		ResultsHeader: "Résultats de la prédiction",
		PriceLabel:    "Prix prédit :",
		CategoryLabel: "Catégorie de prix :",
		Affordable:    "Abordable",
		Expensive:     "Chère",
	},
	English: {
		Title: "Car price prediction",
		Description: "Welcome to the car price prediction app!\n\n" +
			"Estimate the price of a car from its characteristics.\n" +
			"Fill in the fields below and press Predict.\n\n" +
			"A regression model estimates the price and a classification model\n" +
			"estimates its price category (affordable or expensive).",
		Header: "Vehicle characteristics",
		FieldLabels: map[string]string{
			dal.FieldMake:       "Make",
			dal.FieldFuelType:   "Fuel type",
			dal.FieldNumDoors:   "Number of doors",
			dal.FieldBodyStyle:  "Body style",
			dal.FieldHorsepower: "Horsepower (hp)",
			dal.FieldCityMPG:    "City consumption (mpg)",
		},
		Button:        "Predict",
		ResultsHeader: "Prediction results",
		PriceLabel:    "Predicted price:",
		CategoryLabel: "Price category:",
		Affordable:    "Affordable",
		Expensive:     "Expensive",
	},
}

// Formatter renders prices and categories.
type Formatter struct {
	Currency string
	Language Language
}

// Texts returns the strings for f.Language, falling back to French.
func (f Formatter) Texts() Texts {
	if t, ok := texts[f.Language]; ok {
		return t
	}
	return texts[French]
}

// Price formats p with the currency prefix and two decimals.
func (f Formatter) Price(p float64) string {
	return fmt.Sprintf("%s%.2f", f.Currency, p)
}

// Category returns the fixed label for c.
func (f Formatter) Category(c dal.PriceCategory) string {
	t := f.Texts()
	if c == dal.Expensive {
		return t.Expensive
	}
	return t.Affordable
}

// Response builds the wire form of a prediction.
func (f Formatter) Response(v dal.Vehicle, p dal.Prediction) dal.PredictionResponse {
	return dal.PredictionResponse{
		Vehicle:      v,
		Price:        p.Price,
		PriceDisplay: f.Price(p.Price),
		Category:     p.Category.String(),
		Label:        f.Category(p.Category),
	}
}
