package service

import (
	"github.com/formbricks/explorer/internal/datatypes"
	"github.com/formbricks/explorer/internal/models"
	"github.com/formbricks/explorer/internal/ranking"
)

// Corpus is the read-only view of the loaded datasets the services need. Implemented by *corpus.Store.
type Corpus interface {
	Get(id string) (*models.Transcript, error)
	All() []*models.Transcript
	Filter(split *datatypes.Split) []*models.Transcript
	VectorFor(id string) ([]float32, bool)
	Candidates() []ranking.Candidate
	Dimension() int
	Len() int
	EmbeddedCount() int
}
