package storage

import "patrol-inspection/internal/option"

type DropdownOptions struct {
	Customers         []option.Option `json:"customers"`
	PartNames         []option.Option `json:"part_names"`
	PartNumbers       []option.Option `json:"part_numbers"`
	Operations        []option.Option `json:"operations"`
	Operators         []option.Option `json:"operators"`
	Tolerances        []option.Option `json:"tolerances"`
	ProcessTolerances []option.Option `json:"process_tolerances"`
	Instruments       []option.Option `json:"instruments"`
	TimeTypes         []option.Option `json:"time_types"`
}

// StoredValues are the distinct header values already present in reports.
type StoredValues struct {
	Customers   []string
	PartNames   []string
	PartNumbers []string
	Operations  []string
}

type ItemCatalog struct {
	Product []option.Option `json:"product"`
	Process []option.Option `json:"process"`
}

type CatalogEntry struct {
	ID        int64  `json:"id,omitempty"`
	Operation string `json:"operation"`
	Category  string `json:"category"` // "product" | "process"
	Item      string `json:"item"`
}

const (
	CategoryProduct = "product"
	CategoryProcess = "process"
)
