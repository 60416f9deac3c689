package models

import "time"

// Capability is one of the two supported analysis operations.
type Capability string

const (
	CapabilitySummarize Capability = "summarize"
	CapabilityEntities  Capability = "entities"
)

// Entity is a single named-entity span found in extracted text.
type Entity struct {
	Text  string
	Label string
	Score float64
}

// AnalysisResult holds the output of one analysis operation. Exactly one
// of Summary and Entities is populated, depending on Capability.
type AnalysisResult struct {
	Capability Capability
	Summary    string
	Entities   []Entity
}

// DocumentSession is the extracted text of the document a chat is
// currently working with, kept only until it expires.
type DocumentSession struct {
	FileName  string
	Source    string
	Text      string
	Pages     int
	UsedOCR   bool
	ExpiresAt time.Time
}

type UserSettings struct {
	UserID      int64
	UseOCR      bool
	ShowRawText bool
}
