// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Defaults holds the last-used form values persisted between sessions.
// Missing keys decode to the zero value of their field.
type Defaults struct {
	MarginTop   int `json:"margin_top"`
	MarginRight int `json:"margin_right"`
	MarginBot   int `json:"margin_bot"`
	MarginLeft  int `json:"margin_left"`

	BulkFolder     string `json:"bulk_folder"`
	BulkNameEnding string `json:"bulk_name_ending"`

	SingleFileFolder       string `json:"single_file_folder"`
	SingleFileTargetFolder string `json:"single_file_target_folder"`

	// PreviewSketchRatio is the aspect ratio of the preview sketch, e.g. "16:9".
	PreviewSketchRatio string `json:"preview_sketch_ratio,omitempty"`
}

// Margins returns the stored margins as percentages.
func (d Defaults) Margins() PercentMargins {
	return PercentMargins{
		Top:   d.MarginTop,
		Right: d.MarginRight,
		Bot:   d.MarginBot,
		Left:  d.MarginLeft,
	}
}
