package dto

import "time"

type CreateReportRequest struct {
	Lat         float64  `json:"lat" form:"lat" validate:"required,latitude"`
	Lng         float64  `json:"lng" form:"lng" validate:"required,longitude"`
	Category    string   `json:"category" form:"category" validate:"required"`
	Title       *string  `json:"title" form:"title"`
	Description *string  `json:"description" form:"description"`
	Address     *string  `json:"address" form:"address"`
	Rating      *float64 `json:"rating" form:"rating"`

	// Filled by the controller after storing uploaded files.
	ImagePaths []string `json:"-" form:"-"`
}

type UpdateReportRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Address     *string  `json:"address"`
	Rating      *float64 `json:"rating"`
}

type UpdateReportStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=new shared in_progress resolved"`
}

type ReportResponse struct {
	Id          uint      `json:"id"`
	Lat         float64   `json:"lat"`
	Lng         float64   `json:"lng"`
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Category    string    `json:"category"`
	Status      string    `json:"status"`
	Address     *string   `json:"address"`
	Rating      *float64  `json:"rating"`
	Label       string    `json:"label"`
	OrgId       *uint     `json:"org_id"`
	UserId      uint      `json:"user_id"`
	UserName    *string   `json:"user_name,omitempty"`
	Images      []string  `json:"images"`
	CreatedAt   time.Time `json:"created_at"`
}

// ReportFilter carries the list-endpoint query parameters.
type ReportFilter struct {
	Category     string     `query:"category"`
	Status       string     `query:"status"`
	DateFrom     *time.Time `query:"date_from"`
	DateTo       *time.Time `query:"date_to"`
	Search       string     `query:"search"`
	AreaKeywords []string   `query:"area_keywords"`
	Limit        int        `query:"limit"`
	Offset       int        `query:"offset"`
	GeoJSON      bool       `query:"geojson"`
}

// GeoJSON output for map clients.

type GeoJSONFeature struct {
	Type       string                 `json:"type"`
	Geometry   GeoJSONGeometry        `json:"geometry"`
	Properties map[string]interface{} `json:"properties"`
}

type GeoJSONGeometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

type GeoJSONFeatureCollection struct {
	Type     string           `json:"type"`
	Features []GeoJSONFeature `json:"features"`
}

// NewFeatureCollection converts report responses to a GeoJSON
// FeatureCollection. Coordinates are longitude first, as GeoJSON requires.
func NewFeatureCollection(reports []*ReportResponse) *GeoJSONFeatureCollection {
	features := make([]GeoJSONFeature, len(reports))
	for i, r := range reports {
		features[i] = GeoJSONFeature{
			Type: "Feature",
			Geometry: GeoJSONGeometry{
				Type:        "Point",
				Coordinates: []float64{r.Lng, r.Lat},
			},
			Properties: map[string]interface{}{
				"id":         r.Id,
				"title":      r.Title,
				"category":   r.Category,
				"status":     r.Status,
				"label":      r.Label,
				"address":    r.Address,
				"created_at": r.CreatedAt,
			},
		}
	}
	return &GeoJSONFeatureCollection{
		Type:     "FeatureCollection",
		Features: features,
	}
}

type AssignReportRequest struct {
	ReportId uint   `json:"report_id" validate:"required"`
	OrgIds   []uint `json:"org_ids" validate:"required,min=1"`
}

type AssignmentResponse struct {
	Id          uint            `json:"id"`
	ReportId    uint            `json:"report_id"`
	OrgId       uint            `json:"org_id"`
	AssignedBy  uint            `json:"assigned_by"`
	Status      string          `json:"status"`
	AssignedAt  time.Time       `json:"assigned_at"`
	CompletedAt *time.Time      `json:"completed_at"`
	Report      *ReportResponse `json:"report,omitempty"`
}

type UpdateAssignmentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=assigned accepted completed"`
}

// PublishReportEnrichmentMessage is the payload of the in-process
// enrichment pipeline.
type PublishReportEnrichmentMessage struct {
	ReportId uint `json:"report_id"`
}
