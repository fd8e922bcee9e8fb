// Package narrator coordinates the sentence-level synthesis pipeline:
// concurrent per-sentence synthesis against the TTS backend, cache-aside
// reuse of previous results, and order-preserving assembly of the clips
// into one narration.
package narrator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/readaloud/narrator/internal/audio"
	"github.com/readaloud/narrator/internal/cache"
	"github.com/readaloud/narrator/internal/observability"
	"github.com/readaloud/narrator/internal/resilience"
	"github.com/readaloud/narrator/internal/tts"
)

// TextFetcher retrieves the text of an article at a URL.
type TextFetcher interface {
	FetchText(ctx context.Context, url string) (string, error)
}

// SentenceSplitter breaks text into an ordered sequence of sentences.
type SentenceSplitter interface {
	Split(text string) []string
}

// ErrNoSentences is returned when the fetched article yields nothing to
// narrate.
var ErrNoSentences = errors.New("article contains no sentences")

// Options configures a Narrator.
type Options struct {
	Fetcher     TextFetcher
	Splitter    SentenceSplitter
	Store       cache.Store
	Synthesizer tts.Synthesizer
	Silence     time.Duration            // Gap appended after each sentence (default 400ms)
	Retry       *resilience.RetryConfig  // Per-sentence synthesis retry (default resilience.DefaultRetryConfig)
	Breaker     *resilience.CircuitBreaker // Optional breaker around the TTS backend
	Logger      zerolog.Logger
}

// Narrator converts an article URL into one continuous WAV narration.
type Narrator struct {
	fetcher  TextFetcher
	splitter SentenceSplitter
	store    cache.Store
	synth    tts.Synthesizer
	silence  time.Duration
	retryCfg *resilience.RetryConfig
	breaker  *resilience.CircuitBreaker
	logger   zerolog.Logger
}

// New creates a Narrator from explicitly injected collaborators.
func New(opts Options) *Narrator {
	silence := opts.Silence
	if silence == 0 {
		silence = 400 * time.Millisecond
	}
	retryCfg := opts.Retry
	if retryCfg == nil {
		retryCfg = resilience.DefaultRetryConfig()
	}

	return &Narrator{
		fetcher:  opts.Fetcher,
		splitter: opts.Splitter,
		store:    opts.Store,
		synth:    opts.Synthesizer,
		silence:  silence,
		retryCfg: retryCfg,
		breaker:  opts.Breaker,
		logger:   opts.Logger,
	}
}

// Narrate runs the full pipeline for one article: fetch, split, synthesize
// every sentence, assemble in original order, encode as WAV.
func (n *Narrator) Narrate(ctx context.Context, url string) ([]byte, error) {
	m := observability.NewNarrationMetrics()
	m.RecordNarrationStart()

	out, err := n.narrate(ctx, url, m)
	m.RecordNarrationEnd(err == nil)
	return out, err
}

func (n *Narrator) narrate(ctx context.Context, url string, m *observability.Metrics) ([]byte, error) {
	text, err := n.fetcher.FetchText(ctx, url)
	if err != nil {
		observability.RecordError("fetch", "narrator")
		return nil, err
	}

	sentences := n.splitter.Split(text)
	if len(sentences) == 0 {
		observability.RecordError("fetch", "narrator")
		return nil, ErrNoSentences
	}
	m.RecordSentenceCount(len(sentences))
	n.logger.Debug().Int("sentences", len(sentences)).Str("url", url).Msg("article split")

	clips, err := n.SynthesizeAll(ctx, sentences)
	if err != nil {
		return nil, err
	}

	combined, err := n.Assemble(sentences, clips)
	if err != nil {
		return nil, err
	}

	encoded, err := audio.Export(combined)
	if err != nil {
		observability.RecordError("export", "narrator")
		return nil, err
	}

	observability.RecordAudioBytesOut(int64(len(encoded)))
	n.logger.Info().
		Int("sentences", len(sentences)).
		Dur("audio_duration", combined.Duration()).
		Int("bytes", len(encoded)).
		Msg("narration assembled")

	return encoded, nil
}

// SynthesizeAll obtains one decoded clip per sentence, running all
// sentences concurrently and waiting for every one to finish. The returned
// map is keyed by sanitized sentence; textually identical sentences share
// one entry. Any single failure cancels the in-flight siblings and fails
// the whole batch; no partial result is ever returned.
func (n *Narrator) SynthesizeAll(ctx context.Context, sentences []string) (map[string]*audio.Clip, error) {
	clips := make(map[string]*audio.Clip, len(sentences))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	for _, sentence := range sentences {
		key := tts.Sanitize(sentence)
		g.Go(func() error {
			clip, err := n.clipForSentence(ctx, key)
			if err != nil {
				return err
			}
			mu.Lock()
			clips[key] = clip
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return clips, nil
}

// clipForSentence is the per-sentence unit of work: cache lookup, fresh
// synthesis on a miss, write-back, decode. A cache read failure is treated
// as a miss rather than a hard failure; a write-back failure only loses the
// reuse, so it is logged and swallowed.
func (n *Narrator) clipForSentence(ctx context.Context, key string) (*audio.Clip, error) {
	raw, hit, err := n.store.Get(ctx, key)
	if err != nil {
		observability.RecordCacheError()
		n.logger.Warn().Err(err).Msg("cache get failed, synthesizing instead")
		hit = false
	} else if hit {
		observability.RecordCacheHit()
	} else {
		observability.RecordCacheMiss()
	}

	if !hit {
		raw, err = n.synthesize(ctx, key)
		if err != nil {
			observability.RecordError("synthesis", "narrator")
			return nil, err
		}

		if err := n.store.Set(ctx, key, raw); err != nil {
			observability.RecordCacheError()
			n.logger.Warn().Err(err).Msg("cache set failed, result not reused")
		}
	}

	clip, err := audio.Decode(raw)
	if err != nil {
		observability.RecordError("decode", "narrator")
		return nil, fmt.Errorf("sentence %q: %w", key, err)
	}
	return clip, nil
}

// synthesize calls the TTS backend for one sentence, with retry and
// circuit breaker protection. The client itself never retries.
func (n *Narrator) synthesize(ctx context.Context, key string) ([]byte, error) {
	var raw []byte

	call := func() error {
		start := time.Now()
		var err error
		raw, err = n.synth.Synthesize(ctx, key)
		observability.RecordTTSRequest(err == nil, time.Since(start))
		return err
	}
	if n.breaker != nil {
		inner := call
		call = func() error { return n.breaker.Call(inner) }
	}

	defer func() {
		if n.breaker != nil {
			observability.UpdateCircuitBreakerState("tts", int(n.breaker.GetState()))
		}
	}()

	err := resilience.Retry(ctx, call, n.retryCfg, func(err error) bool {
		if errors.Is(err, resilience.ErrCircuitOpen) {
			return false
		}
		var synthErr *tts.SynthesisError
		if errors.As(err, &synthErr) && synthErr.StatusCode != 0 {
			// The backend answered; 5xx may be transient, 4xx will not improve
			return synthErr.StatusCode >= 500
		}
		return resilience.IsRetryableNetworkError(err)
	})
	if err != nil {
		var synthErr *tts.SynthesisError
		if !errors.As(err, &synthErr) {
			err = &tts.SynthesisError{Sentence: key, Err: err}
		}
		return nil, err
	}

	return raw, nil
}

// Assemble concatenates the per-sentence clips in original input order,
// appending the silence gap after every sentence. Completion order plays
// no part here: the sentence slice alone decides the output order.
func (n *Narrator) Assemble(sentences []string, clips map[string]*audio.Clip) (*audio.Clip, error) {
	var combined *audio.Clip

	for i, sentence := range sentences {
		key := tts.Sanitize(sentence)
		clip, ok := clips[key]
		if !ok {
			// SynthesizeAll guarantees full coverage; a miss here is a bug
			return nil, fmt.Errorf("no clip for sentence %d (%q)", i, key)
		}

		segment, err := clip.Append(audio.Silence(n.silence, clip.Format()))
		if err != nil {
			return nil, fmt.Errorf("append silence after sentence %d: %w", i, err)
		}

		if combined == nil {
			combined = segment
			continue
		}
		combined, err = combined.Append(segment)
		if err != nil {
			return nil, fmt.Errorf("append sentence %d: %w", i, err)
		}
	}

	if combined == nil {
		return nil, ErrNoSentences
	}
	return combined, nil
}
