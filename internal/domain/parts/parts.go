// Package parts implements the spare-parts search path: keyword matching
// against a static catalog, attribute filters and pagination. Unlike the
// service ranking path there is no learned re-ranking here.
package parts

// Part is one catalog entry.
type Part struct {
	ID          int64   `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description" yaml:"description"`
	Brand       string  `json:"brand" yaml:"brand"`
	CarMake     string  `json:"car_make,omitempty" yaml:"car_make,omitempty"`
	CarModel    string  `json:"car_model,omitempty" yaml:"car_model,omitempty"`
	Category    string  `json:"category" yaml:"category"`
	Price       float64 `json:"price" yaml:"price"`
	InStock     bool    `json:"in_stock" yaml:"in_stock"`
}

// ScoredPart is a catalog entry with its query relevance attached.
type ScoredPart struct {
	Part
	Score float64 `json:"score"`
}

// DefaultCatalog returns the built-in part set used when no catalog file is
// configured.
func DefaultCatalog() []Part {
	return []Part{
		{
			ID:          1,
			Name:        "Brake Pads Front",
			Description: "Ceramic brake pads for BMW E90",
			Brand:       "Bosch",
			CarMake:     "BMW",
			CarModel:    "E90",
			Category:    "brakes",
			Price:       79.99,
			InStock:     true,
		},
		{
			ID:          2,
			Name:        "Oil Filter",
			Description: "Oil filter compatible with VW Golf",
			Brand:       "Mann",
			CarMake:     "VW",
			CarModel:    "Golf",
			Category:    "engine",
			Price:       14.50,
			InStock:     true,
		},
		{
			ID:          3,
			Name:        "Brake Discs Rear",
			Description: "Vented rear brake discs for BMW E90",
			Brand:       "ATE",
			CarMake:     "BMW",
			CarModel:    "E90",
			Category:    "brakes",
			Price:       129.00,
			InStock:     false,
		},
		{
			ID:          4,
			Name:        "Air Filter",
			Description: "Engine air filter for VW Golf and Passat",
			Brand:       "Mann",
			CarMake:     "VW",
			Category:    "engine",
			Price:       19.90,
			InStock:     true,
		},
		{
			ID:          5,
			Name:        "Wiper Blades Set",
			Description: "All-season wiper blades, universal fit",
			Brand:       "Bosch",
			Category:    "exterior",
			Price:       24.99,
			InStock:     true,
		},
	}
}
