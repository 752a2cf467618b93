package processor

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/slide-narrator/internal/config"
	"github.com/nguyentantai21042004/slide-narrator/internal/extractor"
	"github.com/nguyentantai21042004/slide-narrator/internal/logger"
	"github.com/nguyentantai21042004/slide-narrator/internal/models"
	"github.com/nguyentantai21042004/slide-narrator/internal/speech"
	"github.com/nguyentantai21042004/slide-narrator/internal/summarizer"
	"github.com/nguyentantai21042004/slide-narrator/internal/testutil"
)

const scenarioContent = "### Summary\n이 발표는 드론 실습 과정을 소개합니다.\n이상으로 요약을 마칩니다."

type fixture struct {
	cfg   *config.Config
	tts   *testutil.FakeTTS
	calls *atomic.Int32
	proc  Processor
}

func newFixture(t *testing.T, handler http.HandlerFunc) *fixture {
	t.Helper()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	cfg := config.Default()
	cfg.Paths.Output = filepath.Join(t.TempDir(), "output")
	cfg.Summarizer.Endpoint = srv.URL + "/api/chat"
	cfg.Summarizer.Timeout = 5 * time.Second
	require.NoError(t, cfg.Validate())

	log := logger.NewNop()
	tts := &testutil.FakeTTS{Audio: []byte("RIFF....WAVEfmt ")}

	sum, err := summarizer.New(cfg.Summarizer, log)
	require.NoError(t, err)
	renderer, err := speech.New(cfg.Speech, tts, log)
	require.NoError(t, err)
	proc, err := New(cfg, extractor.New(log), sum, renderer, log)
	require.NoError(t, err)

	return &fixture{cfg: cfg, tts: tts, calls: &calls, proc: proc}
}

func reply(content string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"message":{"role":"assistant","content":%q}}`, content)
	}
}

func threeSlideDeck() models.Source {
	return models.Source{
		Name: "lecture.pptx",
		Data: testutil.BuildPPTX(testutil.Deck{Slides: []testutil.Slide{
			{Texts: []string{"드론 실습"}},
			{Texts: []string{"안전 수칙"}},
			{Texts: []string{"비행 연습"}},
		}}),
	}
}

func outputFiles(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestProcessPersisted(t *testing.T) {
	f := newFixture(t, reply(scenarioContent))

	res, err := f.proc.Process(context.Background(), threeSlideDeck(), models.RenderPersisted)
	require.NoError(t, err)
	require.NoError(t, res.RenderErr)

	assert.Equal(t, StateDone, res.State)
	assert.Equal(t, 3, strings.Count(res.Extracted, "슬라이드"))
	assert.Equal(t, "Summary\n이 발표는 드론 실습 과정을 소개합니다.\n이상으로 요약을 마칩니다.", res.Narration)

	wantAudio := filepath.Join(f.cfg.Paths.Output, "lecture_summary.wav")
	assert.Equal(t, wantAudio, res.Audio.Path)
	info, err := os.Stat(wantAudio)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	require.Equal(t, 1, f.tts.CallCount())
	assert.Equal(t, res.Narration, f.tts.Calls[0].Stdin)
	assert.ElementsMatch(t, []string{"lecture_full.txt", "lecture_summary.txt", "lecture_summary.wav"}, outputFiles(t, f.cfg.Paths.Output))
}

func TestProcessSummaryRoundTrip(t *testing.T) {
	f := newFixture(t, reply("첫 줄입니다.\n\n둘째 줄: café, naïve, 😀"))

	res, err := f.proc.Process(context.Background(), threeSlideDeck(), models.RenderPersisted)
	require.NoError(t, err)

	data, err := os.ReadFile(res.SummaryPath)
	require.NoError(t, err)
	assert.Equal(t, []byte(res.Narration), data)

	full, err := os.ReadFile(res.ExtractedPath)
	require.NoError(t, err)
	assert.Equal(t, res.Extracted, string(full))
}

func TestProcessTransportError(t *testing.T) {
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	})

	res, err := f.proc.Process(context.Background(), threeSlideDeck(), models.RenderPersisted)
	require.Error(t, err)
	assert.Equal(t, KindTransport, KindOf(err))
	assert.ErrorIs(t, err, summarizer.ErrTransport)
	assert.Contains(t, err.Error(), f.cfg.Summarizer.Endpoint)
	assert.Equal(t, StateSummarizationFailed, res.State)

	assert.Empty(t, outputFiles(t, f.cfg.Paths.Output))
	assert.Zero(t, f.tts.CallCount())
}

func TestProcessResponseFormatError(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"missing content", func(w http.ResponseWriter, r *http.Request) { fmt.Fprint(w, `{"done":true}`) }},
		{"markup only", reply("### ** __ `")},
		{"whitespace only", reply("  \n\t ")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.handler)

			res, err := f.proc.Process(context.Background(), threeSlideDeck(), models.RenderPersisted)
			require.Error(t, err)
			assert.Equal(t, KindResponseFormat, KindOf(err))
			assert.Equal(t, StateSummarizationFailed, res.State)
			assert.Empty(t, outputFiles(t, f.cfg.Paths.Output))
		})
	}
}

func TestProcessInputError(t *testing.T) {
	tests := []struct {
		name string
		src  models.Source
	}{
		{"missing path", models.Source{Path: filepath.Join(t.TempDir(), "nope.pptx")}},
		{"malformed deck", models.Source{Name: "bad.pptx", Data: []byte("not a zip")}},
		{"unsupported extension", models.Source{Name: "notes.pdf", Data: []byte("%PDF")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, reply("unused"))

			res, err := f.proc.Process(context.Background(), tt.src, models.RenderPersisted)
			require.Error(t, err)
			assert.Equal(t, KindInput, KindOf(err))
			assert.Equal(t, StateExtractionFailed, res.State)
			assert.Zero(t, f.calls.Load(), "no request may be sent for bad input")
			assert.Empty(t, outputFiles(t, f.cfg.Paths.Output))
		})
	}
}

func TestProcessCancelled(t *testing.T) {
	t.Run("before extraction", func(t *testing.T) {
		f := newFixture(t, reply("unused"))
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		res, err := f.proc.Process(ctx, threeSlideDeck(), models.RenderPersisted)
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, KindOf(err))
		assert.NotContains(t, err.Error(), "slide-deck file")
		assert.Equal(t, StateExtractionFailed, res.State)
		assert.Zero(t, f.calls.Load())
	})

	t.Run("during summarization", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
			cancel()
			<-r.Context().Done()
		})

		res, err := f.proc.Process(ctx, threeSlideDeck(), models.RenderPersisted)
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, KindOf(err))
		assert.Equal(t, StateSummarizationFailed, res.State)
		assert.Empty(t, outputFiles(t, f.cfg.Paths.Output))
	})
}

func TestProcessRenderFailureKeepsNarration(t *testing.T) {
	tests := []struct {
		name  string
		setup func(tts *testutil.FakeTTS)
		want  error
	}{
		{"engine missing", func(tts *testutil.FakeTTS) { tts.Missing = true }, speech.ErrEngineUnavailable},
		{"engine crashed", func(tts *testutil.FakeTTS) { tts.Fail = errors.New("exit status 1") }, speech.ErrSynthesis},
		{"empty audio", func(tts *testutil.FakeTTS) { tts.Audio = nil }, speech.ErrSynthesis},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, reply(scenarioContent))
			tt.setup(f.tts)

			res, err := f.proc.Process(context.Background(), threeSlideDeck(), models.RenderPersisted)
			require.NoError(t, err)
			require.Error(t, res.RenderErr)
			assert.Equal(t, KindRender, KindOf(res.RenderErr))
			assert.ErrorIs(t, res.RenderErr, tt.want)
			assert.Equal(t, StateRenderingFailed, res.State)
			assert.NotEmpty(t, res.Narration)

			assert.NotContains(t, outputFiles(t, f.cfg.Paths.Output), "lecture_summary.wav")
			assert.FileExists(t, res.SummaryPath)
		})
	}
}

func TestProcessDirectMode(t *testing.T) {
	f := newFixture(t, reply(scenarioContent))

	res, err := f.proc.Process(context.Background(), threeSlideDeck(), models.RenderDirect)
	require.NoError(t, err)
	require.NoError(t, res.RenderErr)

	assert.Equal(t, StateDone, res.State)
	assert.Equal(t, models.RenderDirect, res.Audio.Mode)
	assert.Empty(t, res.Audio.Path)
	assert.NotContains(t, f.tts.Calls[0].Args, "-w")
	assert.NotContains(t, outputFiles(t, f.cfg.Paths.Output), "lecture_summary.wav")
}

func TestProcessSpeechDisabled(t *testing.T) {
	f := newFixture(t, reply(scenarioContent))
	f.cfg.Speech.Enabled = false
	f.cfg.Output.Docx = true

	res, err := f.proc.Process(context.Background(), threeSlideDeck(), models.RenderPersisted)
	require.NoError(t, err)
	assert.Equal(t, StateDone, res.State)
	assert.Zero(t, f.tts.CallCount())
	assert.FileExists(t, res.DocxPath)
	assert.Equal(t, "lecture_summary.docx", filepath.Base(res.DocxPath))
}

func TestNewRequiresRenderer(t *testing.T) {
	cfg := config.Default()
	_, err := New(cfg, extractor.New(logger.NewNop()), nil, nil, logger.NewNop())
	assert.Error(t, err)

	cfg.Summarizer.Template = "no-such-template"
	cfg.Speech.Enabled = false
	_, err = New(cfg, extractor.New(logger.NewNop()), nil, nil, logger.NewNop())
	assert.Error(t, err)
}

func TestBaseName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"lecture.pptx", "lecture"},
		{"data/3회차 강연.pptx", "3회차 강연"},
		{"/abs/path/deck.v2.dsh", "deck.v2"},
		{"noext", "noext"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, BaseName(tt.in))
		})
	}
}

func TestStateTransitions(t *testing.T) {
	assert.True(t, StateIdle.canMoveTo(StateExtracting))
	assert.True(t, StateSummarized.canMoveTo(StateRendering))
	assert.False(t, StateIdle.canMoveTo(StateSummarizing))
	assert.False(t, StateDone.canMoveTo(StateIdle))
	assert.False(t, StateExtracted.canMoveTo(StateExtracting), "states are never revisited")

	for _, s := range []State{StateDone, StateExtractionFailed, StateSummarizationFailed, StateRenderingFailed} {
		assert.True(t, s.Terminal(), s)
	}
	assert.False(t, StateRendering.Terminal())
}
