package storage

import (
	"errors"
	"time"
)

var (
	ErrReportNotFound   = errors.New("report not found")
	ErrDuplicateItem    = errors.New("duplicate sr_no in report")
	ErrDuplicateCatalog = errors.New("catalog entry already exists")
)

type Report struct {
	ID              int64            `json:"id"`
	DocNo           string           `json:"doc_no"`
	RevisionNo      string           `json:"revision_no"`
	Date            string           `json:"date"`
	PartName        string           `json:"part_name"`
	PartNumber      string           `json:"part_number"`
	OperationName   string           `json:"operation_name"`
	CustomerName    string           `json:"customer_name"`
	PreparedBy      string           `json:"prepared_by"`
	ApprovedBy      string           `json:"approved_by"`
	Items           []InspectionItem `json:"items"`
	ScheduleEntries []ScheduleEntry  `json:"schedule_entries"`
	ItemCount       int              `json:"item_count"`
}

type ReportSummary struct {
	ID            int64  `json:"id"`
	DocNo         string `json:"doc_no"`
	RevisionNo    string `json:"revision_no"`
	Date          string `json:"date"`
	PartName      string `json:"part_name"`
	PartNumber    string `json:"part_number"`
	OperationName string `json:"operation_name"`
	CustomerName  string `json:"customer_name"`
	PreparedBy    string `json:"prepared_by"`
	ApprovedBy    string `json:"approved_by"`
	ItemCount     int    `json:"item_count"`
}

// ReportFilter: пустые поля не участвуют в выборке.
type ReportFilter struct {
	Date          string
	PartName      string
	OperationName string
	CustomerName  string
}

func (f ReportFilter) IsEmpty() bool {
	return f.Date == "" && f.PartName == "" && f.OperationName == "" && f.CustomerName == ""
}

type InspectionItem struct {
	ID          int64  `json:"id,omitempty"`
	SrNo        int    `json:"sr_no"`
	Item        string `json:"item"`
	SpecialChar string `json:"special_char"`
	Spec        string `json:"spec"`
	Tolerance   string `json:"tolerance"`
	Inst        string `json:"inst"`
}

const (
	ProductSrMax = 10
	ProcessSrMin = 11
	ProcessSrMax = 20
)

func (i InspectionItem) IsProduct() bool {
	return i.SrNo >= 1 && i.SrNo <= ProductSrMax
}

func (i InspectionItem) IsProcess() bool {
	return i.SrNo >= ProcessSrMin && i.SrNo <= ProcessSrMax
}

// DateLayout is the wire format of report and entry dates.
const DateLayout = "2006-01-02"

func Today(now time.Time) string {
	return now.Format(DateLayout)
}
