package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formbricks/explorer/internal/corpus/corpustest"
	"github.com/formbricks/explorer/internal/datatypes"
	"github.com/formbricks/explorer/internal/explorererrors"
)

func TestTranscriptsService_ListTranscripts(t *testing.T) {
	svc := NewTranscriptsService(corpustest.SampleStore(t))

	all := svc.ListTranscripts(nil)
	require.Len(t, all.Transcripts, 3)
	assert.Equal(t, 3, all.Total)
	assert.Equal(t, "w1", all.Transcripts[0].TranscriptID)
	assert.Equal(t, 2, all.Transcripts[0].MessageCount)
	assert.Equal(t, "Technology", *all.Transcripts[0].Industry)

	split := datatypes.SplitScientists
	scientists := svc.ListTranscripts(&split)
	require.Len(t, scientists.Transcripts, 1)
	assert.Equal(t, "s1", scientists.Transcripts[0].TranscriptID)
	assert.Equal(t, 1, scientists.Total)
}

func TestTranscriptsService_GetTranscript(t *testing.T) {
	svc := NewTranscriptsService(corpustest.SampleStore(t))

	tr, err := svc.GetTranscript("c1")
	require.NoError(t, err)
	assert.Equal(t, datatypes.SplitCreatives, tr.Split)
	assert.Len(t, tr.Messages, 2)

	_, err = svc.GetTranscript("missing")
	assert.ErrorIs(t, err, explorererrors.ErrNotFound)
}
