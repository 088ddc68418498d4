package model

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FinancialItem is one line of the loan cost breakdown.
type FinancialItem struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Quantity string          `json:"quantity"`
	Unit     string          `json:"unit"`
	Price    decimal.Decimal `json:"price"`
}

// DynamicPhoto is a single captioned photo slot. Image holds an opaque
// reference (data URI or storage key); empty means the slot is unfilled.
type DynamicPhoto struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Image       string `json:"image"`
	Description string `json:"description"`
	Rotation    int    `json:"rotation"`
	DisplayMode string `json:"display_mode,omitempty"`
}

// DocumentSection groups photos for AREA/KP document packets.
type DocumentSection struct {
	ID     string         `json:"id"`
	Title  string         `json:"title"`
	Photos []DynamicPhoto `json:"photos"`
}

// KCSection groups photos for KC survey reports. SectionType drives layout
// downstream (survey, domisili, peta-domisili, jaminan, peta-jaminan).
type KCSection struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	SectionType string         `json:"section_type"`
	Photos      []DynamicPhoto `json:"photos"`
}

// CompletenessChecklist records which supporting documents were collected.
type CompletenessChecklist struct {
	IDCard           bool `json:"id_card"`
	SpouseIDCard     bool `json:"spouse_id_card"`
	FamilyCard       bool `json:"family_card"`
	TaxNumber        bool `json:"tax_number"`
	MemberBook       bool `json:"member_book"`
	FamilyMemberBook bool `json:"family_member_book"`
	IncomeProof      bool `json:"income_proof"`
	CollateralCopy   bool `json:"collateral_copy"`
	ResidenceMap     bool `json:"residence_map"`
	BusinessMap      bool `json:"business_map"`
	CollateralMap    bool `json:"collateral_map"`
}

// Committee names the credit committee members for an AREA analysis.
type Committee struct {
	Chair     string `json:"chair"`
	Members   string `json:"members"`
	Secretary string `json:"secretary"`
}

// AreaAnalysis is the committee analysis block attached to AREA reports.
type AreaAnalysis struct {
	MinutesNumber   string                `json:"minutes_number"`
	Address         string                `json:"address"`
	RequestedAmount decimal.Decimal       `json:"requested_amount"`
	Purpose         string                `json:"purpose"`
	Checklist       CompletenessChecklist `json:"checklist"`
	MeetingNotes    string                `json:"meeting_notes"`
	Weaknesses      string                `json:"weaknesses"`
	Strengths       string                `json:"strengths"`
	Decision        string                `json:"decision"`
	FollowUpNotes   string                `json:"follow_up_notes"`
	Committee       Committee             `json:"committee"`
}

// ReportData is the compiled report payload. The workflow engine treats it as
// opaque except for IsEmpty; it is stored as a single jsonb column.
type ReportData struct {
	MemberName       string            `json:"member_name"`
	LoanTotal        decimal.Decimal   `json:"loan_total"`
	FinancialItems   []FinancialItem   `json:"financial_items"`
	AdditionalInfo   string            `json:"additional_info"`
	DynamicPhotos    []DynamicPhoto    `json:"dynamic_photos"`
	KCSections       []KCSection       `json:"kc_sections"`
	DocumentSections []DocumentSection `json:"document_sections"`
	AreaAnalysis     *AreaAnalysis     `json:"area_analysis,omitempty"`
}

func photoSlot(title string) DynamicPhoto {
	return DynamicPhoto{ID: uuid.NewString(), Title: title}
}

func mapSlot(title string) DynamicPhoto {
	p := photoSlot(title)
	p.DisplayMode = "full"
	return p
}

// DefaultKCSections returns the empty KC survey photo structure.
func DefaultKCSections() []KCSection {
	return []KCSection{
		{ID: "kc-survey", Title: "1. YBS & Tim Survey", SectionType: "survey", Photos: []DynamicPhoto{
			photoSlot("YBS & Tim"), photoSlot("YBS & Istri"),
		}},
		{ID: "kc-domisili", Title: "2. Foto Domisili", SectionType: "domisili", Photos: []DynamicPhoto{
			photoSlot("Tampak Depan"), photoSlot("Tampak Kanan"), photoSlot("Tampak Kiri"), photoSlot("Tampak Dalam"),
		}},
		{ID: "kc-peta-domisili", Title: "3. Peta Domisili", SectionType: "peta-domisili", Photos: []DynamicPhoto{
			mapSlot("Peta Lokasi"),
		}},
		{ID: "kc-jaminan", Title: "4. Foto Jaminan", SectionType: "jaminan", Photos: []DynamicPhoto{
			photoSlot("Tampak Depan"), photoSlot("Tampak Kanan"), photoSlot("Tampak Kiri"), photoSlot("Tampak Dalam"),
		}},
		{ID: "kc-peta-jaminan", Title: "5. Peta Jaminan", SectionType: "peta-jaminan", Photos: []DynamicPhoto{
			mapSlot("Peta Lokasi Jaminan"),
		}},
	}
}

// DefaultDocumentSections returns the empty AREA/KP document packet structure.
func DefaultDocumentSections() []DocumentSection {
	return []DocumentSection{
		{ID: "admin", Title: "1. Dokumen Administratif", Photos: []DynamicPhoto{
			photoSlot("Surat Pengantar"), photoSlot("Surat Permohonan"),
		}},
		{ID: "identity", Title: "2. Dokumen Identitas", Photos: []DynamicPhoto{
			photoSlot("KTP Nasabah"), photoSlot("KTP Pasangan"),
		}},
		{ID: "finance", Title: "3. Dokumen Keuangan", Photos: []DynamicPhoto{
			photoSlot("Scan Saldo Simpanan"),
		}},
		{ID: "asset", Title: "4. Dokumen Aset & Jaminan", Photos: []DynamicPhoto{
			photoSlot("Foto SHM"),
		}},
		{ID: "survey", Title: "5. Foto Survey & Lokasi Fisik", Photos: []DynamicPhoto{
			photoSlot("YBS & Tim Survey"), photoSlot("YBS & Istri"),
			photoSlot("Rumah (Tampak Depan)"), photoSlot("Rumah (Tampak Kiri)"),
			photoSlot("Rumah (Tampak Kanan)"), photoSlot("Rumah (Tampak Dalam)"),
		}},
		{ID: "peta", Title: "Peta Lokasi Domisili", Photos: []DynamicPhoto{
			mapSlot("Peta Lokasi Domisili"),
		}},
		{ID: "jaminan", Title: "Foto Fisik Jaminan Tanah/Bangunan", Photos: []DynamicPhoto{
			photoSlot("Tampak Depan"), photoSlot("Tampak Kanan"),
			photoSlot("Tampak Kiri"), photoSlot("Peta Lokasi Jaminan"),
		}},
	}
}

// DefaultFinancialItems returns the standard loan cost lines with zero amounts.
func DefaultFinancialItems() []FinancialItem {
	names := []string{"Adm kredit dan materai", "Jaspel", "Survei", "Asuransi", "Dibawa pulang"}
	items := make([]FinancialItem, 0, len(names))
	for _, n := range names {
		items = append(items, FinancialItem{ID: uuid.NewString(), Name: n, Price: decimal.Zero})
	}
	return items
}

// DefaultAreaAnalysis returns the AREA committee block with the checklist
// defaults the committee starts from.
func DefaultAreaAnalysis() *AreaAnalysis {
	return &AreaAnalysis{
		Checklist: CompletenessChecklist{
			IDCard:           true,
			SpouseIDCard:     true,
			FamilyCard:       true,
			MemberBook:       true,
			FamilyMemberBook: true,
			IncomeProof:      true,
			CollateralCopy:   true,
			ResidenceMap:     true,
			BusinessMap:      true,
			CollateralMap:    true,
		},
		Decision: "Disetujui sebesar Rp ",
	}
}

// DefaultReportData returns a fully populated empty payload.
func DefaultReportData() ReportData {
	return ReportData{
		LoanTotal:        decimal.Zero,
		FinancialItems:   DefaultFinancialItems(),
		DynamicPhotos:    []DynamicPhoto{},
		KCSections:       DefaultKCSections(),
		DocumentSections: DefaultDocumentSections(),
		AreaAnalysis:     DefaultAreaAnalysis(),
	}
}

// MergeWithDefaults overlays a loaded payload on top of the current defaults.
// The loaded payload always wins; sub-structures it lacks (added after the
// payload was saved) are filled from defaults, never the reverse.
func (d ReportData) MergeWithDefaults() ReportData {
	def := DefaultReportData()
	if len(d.FinancialItems) == 0 {
		d.FinancialItems = def.FinancialItems
	}
	if d.DynamicPhotos == nil {
		d.DynamicPhotos = def.DynamicPhotos
	}
	if len(d.KCSections) == 0 {
		d.KCSections = def.KCSections
	}
	if len(d.DocumentSections) == 0 {
		d.DocumentSections = def.DocumentSections
	}
	if d.AreaAnalysis == nil {
		d.AreaAnalysis = def.AreaAnalysis
	}
	return d
}

// IsEmpty reports whether the payload carries nothing worth keeping: no member
// name and no image in any photo slot. Used to suppress pointless draft writes
// and to silently discard a no-op navigation away.
func (d ReportData) IsEmpty() bool {
	if strings.TrimSpace(d.MemberName) != "" {
		return false
	}
	for _, s := range d.KCSections {
		for _, p := range s.Photos {
			if p.Image != "" {
				return false
			}
		}
	}
	for _, s := range d.DocumentSections {
		for _, p := range s.Photos {
			if p.Image != "" {
				return false
			}
		}
	}
	for _, p := range d.DynamicPhotos {
		if p.Image != "" {
			return false
		}
	}
	return true
}

// HasPhoto reports whether at least one photo slot is filled anywhere.
func (d ReportData) HasPhoto() bool {
	for _, s := range d.KCSections {
		for _, p := range s.Photos {
			if p.Image != "" {
				return true
			}
		}
	}
	for _, s := range d.DocumentSections {
		for _, p := range s.Photos {
			if p.Image != "" {
				return true
			}
		}
	}
	for _, p := range d.DynamicPhotos {
		if p.Image != "" {
			return true
		}
	}
	return false
}
