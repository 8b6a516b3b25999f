package domain

import (
	"encoding/json"
	"strings"
	"time"
)

// WorkCategory classifies a portfolio project.
type WorkCategory string

const (
	WorkWebDevelopment WorkCategory = "Web Development"
	WorkMobileApp      WorkCategory = "Mobile App"
	WorkDesktopApp     WorkCategory = "Desktop App"
	WorkAPI            WorkCategory = "API"
	WorkDesign         WorkCategory = "Design"
	WorkOther          WorkCategory = "Other"
)

var WorkCategories = []WorkCategory{
	WorkWebDevelopment, WorkMobileApp, WorkDesktopApp, WorkAPI, WorkDesign, WorkOther,
}

func (c WorkCategory) Valid() bool {
	for _, v := range WorkCategories {
		if c == v {
			return true
		}
	}
	return false
}

// WorkStatus is the delivery state of a project.
type WorkStatus string

const (
	WorkPlanning   WorkStatus = "Planning"
	WorkInProgress WorkStatus = "In Progress"
	WorkCompleted  WorkStatus = "Completed"
	WorkOnHold     WorkStatus = "On Hold"
)

var WorkStatuses = []WorkStatus{WorkPlanning, WorkInProgress, WorkCompleted, WorkOnHold}

func (s WorkStatus) Valid() bool {
	for _, v := range WorkStatuses {
		if s == v {
			return true
		}
	}
	return false
}

type Image struct {
	URL     string `json:"url" bson:"url"`
	Caption string `json:"caption" bson:"caption"`
	IsMain  bool   `json:"isMain" bson:"isMain"`
}

type WorkLinks struct {
	Live          string `json:"live" bson:"live"`
	Github        string `json:"github" bson:"github"`
	Documentation string `json:"documentation" bson:"documentation"`
}

type Duration struct {
	StartDate *time.Time `json:"startDate,omitempty" bson:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty" bson:"endDate,omitempty"`
}

// Work is a portfolio project.
type Work struct {
	ID               string       `json:"_id"`
	Title            string       `json:"title"`
	Description      string       `json:"description"`
	ShortDescription string       `json:"shortDescription"`
	Category         WorkCategory `json:"category"`
	Status           WorkStatus   `json:"status"`
	// TechnologyIDs is what gets stored; Technologies is the resolved view.
	TechnologyIDs []string        `json:"-"`
	Technologies  []TechnologyRef `json:"technologies"`
	Images        []Image         `json:"images"`
	Links         WorkLinks       `json:"links"`
	Features      []string        `json:"features"`
	Duration      Duration        `json:"duration"`
	Featured      bool            `json:"featured"`
	IsActive      bool            `json:"isActive"`
	Order         int             `json:"order"`
	CreatedByID   string          `json:"-"`
	CreatedBy     *UserSummary    `json:"createdBy,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// NewWork returns a Work carrying the schema defaults.
func NewWork() *Work {
	return &Work{
		Category: WorkWebDevelopment,
		Status:   WorkCompleted,
		IsActive: true,
	}
}

// MainImage is the first image flagged isMain, else the first image, else nil.
func (w *Work) MainImage() *Image {
	for i := range w.Images {
		if w.Images[i].IsMain {
			return &w.Images[i]
		}
	}
	if len(w.Images) > 0 {
		return &w.Images[0]
	}
	return nil
}

func (w *Work) MarshalJSON() ([]byte, error) {
	type plain Work
	out := struct {
		*plain
		Technologies []TechnologyRef `json:"technologies"`
		Images       []Image         `json:"images"`
		Features     []string        `json:"features"`
		MainImage    *Image          `json:"mainImage"`
	}{
		plain:        (*plain)(w),
		Technologies: nonNil(w.Technologies),
		Images:       nonNil(w.Images),
		Features:     nonNil(w.Features),
		MainImage:    w.MainImage(),
	}
	return json.Marshal(out)
}

func (w *Work) Normalize() {
	w.Title = strings.TrimSpace(w.Title)
	w.Description = strings.TrimSpace(w.Description)
	w.ShortDescription = strings.TrimSpace(w.ShortDescription)

	features := w.Features[:0:0]
	for _, f := range w.Features {
		if f = strings.TrimSpace(f); f != "" {
			features = append(features, f)
		}
	}
	w.Features = features
	w.TechnologyIDs = uniqueStrings(w.TechnologyIDs)
}

func (w *Work) Validate() error {
	switch {
	case w.Title == "":
		return Invalid("title", "is required")
	case w.Description == "":
		return Invalid("description", "is required")
	}
	if !w.Category.Valid() {
		return Invalid("category", "must be one of: %s", joinEnum(WorkCategories))
	}
	if !w.Status.Valid() {
		return Invalid("status", "must be one of: %s", joinEnum(WorkStatuses))
	}
	for _, img := range w.Images {
		if strings.TrimSpace(img.URL) == "" {
			return Invalid("images.url", "is required")
		}
	}
	d := w.Duration
	if d.StartDate != nil && d.EndDate != nil && d.EndDate.Before(*d.StartDate) {
		return Invalid("duration.endDate", "must not be before startDate")
	}
	return nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// uniqueStrings keeps the first occurrence of each value, preserving order.
func uniqueStrings(in []string) []string {
	if len(in) == 0 {
		return in
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
