package internal

import (
	"context"
	"fmt"
	"image"
	"time"

	goerrors "github.com/go-errors/errors"
	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/nocturnecity/image-reframer/pkg"
)

// Env holds what every handler needs; it is built once per process.
type Env struct {
	Log     hclog.Logger
	Store   Store
	Presets *PresetRegistry
	Metrics *Metrics
}

func (e Env) withDefaults() Env {
	if e.Log == nil {
		e.Log = hclog.NewNullLogger()
	}
	if e.Store == nil {
		e.Store = &RoutingStore{Local: NewLocalStore(e.Log)}
	}
	if e.Presets == nil {
		e.Presets = DefaultPresets()
	}
	if e.Metrics == nil {
		e.Metrics = NewMetrics()
	}
	return e
}

func NewResizeHandler(request pkg.Request, env Env) *ResizeHandler {
	env = env.withDefaults()
	return &ResizeHandler{
		Request: request,
		env:     env,
		log:     env.Log.With("request_id", uuid.NewString()),
	}
}

type ResizeHandler struct {
	Request pkg.Request
	env     Env
	log     hclog.Logger
}

// ProcessRequest loads the source, reframes it to the requested size, encodes it and
// stores it under the suggested file name.
func (rh *ResizeHandler) ProcessRequest(ctx context.Context) (res *pkg.Result, err error) {
	rh.env.Metrics.resizeRequests.Inc()
	start := time.Now()
	defer func() {
		if err != nil {
			rh.env.Metrics.failed(err)
			rh.log.Error("resize failed", "reason", ErrorReason(err), "error", err)
			err = goerrors.WrapPrefix(err, "process request error", 0)
			return
		}
		durationMs := float64(time.Since(start).Milliseconds())
		rh.env.Metrics.resizeDuration.Observe(durationMs)
		rh.env.Metrics.outputSize.Observe(float64(res.Bytes))
		rh.log.Info("resized", "path", res.Path, "size", fmt.Sprintf("%dx%d", res.Width, res.Height), "duration_ms", durationMs)
	}()

	rh.log.Debug("processing request", "request", fmt.Sprintf("%+v", rh.Request))
	if err := rh.Request.Validate(); err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrInvalidRequest)
	}
	policy, err := pkg.ParsePolicy(string(rh.Request.Policy))
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrInvalidRequest)
	}
	resampler, err := NewResampler(rh.Request.Filter)
	if err != nil {
		return nil, err
	}

	img, srcFormat, err := loadImage(ctx, rh.env.Store, rh.Request.Source)
	if err != nil {
		return nil, err
	}
	original := pkg.DimensionsOf(img)

	intent := rh.Request.Intent()
	target, percent, err := NewSizeResolver(rh.env.Presets).Resolve(original, intent)
	if err != nil {
		return nil, err
	}
	rh.log.Debug("resolved target", "original", original.String(), "target", target.String(), "percent", percent)

	out, applied, err := NewReframer(resampler).Reframe(img, target, policy, rh.Request.Focal)
	if err != nil {
		return nil, err
	}

	format := OutputFormat(rh.Request.Format, srcFormat)
	quality := rh.Request.Quality
	if quality == 0 {
		quality = DefaultResizeQuality
	}
	name := FileName(intent, target, percent, format)
	return storeImage(ctx, rh.env.Store, rh.Request.Destination, name, out, format, quality, func(r *pkg.Result) {
		r.Percent = percent
		r.Policy = applied
	})
}

func NewConvertHandler(request pkg.ConvertRequest, env Env) *ConvertHandler {
	env = env.withDefaults()
	return &ConvertHandler{
		Request: request,
		env:     env,
		log:     env.Log.With("request_id", uuid.NewString()),
	}
}

// ConvertHandler changes the container format without resizing.
type ConvertHandler struct {
	Request pkg.ConvertRequest
	env     Env
	log     hclog.Logger
}

func (ch *ConvertHandler) ProcessRequest(ctx context.Context) (res *pkg.Result, err error) {
	ch.env.Metrics.convertRequests.Inc()
	defer func() {
		if err != nil {
			ch.env.Metrics.failed(err)
			ch.log.Error("convert failed", "reason", ErrorReason(err), "error", err)
			err = goerrors.WrapPrefix(err, "process convert error", 0)
			return
		}
		ch.env.Metrics.outputSize.Observe(float64(res.Bytes))
		ch.log.Info("converted", "path", res.Path, "format", res.Format)
	}()

	if err := ch.Request.Validate(); err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrInvalidRequest)
	}
	img, _, err := loadImage(ctx, ch.env.Store, ch.Request.Source)
	if err != nil {
		return nil, err
	}
	src, err := ParseLocation(ch.Request.Source)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrInvalidRequest)
	}
	quality := ch.Request.Quality
	if quality == 0 {
		quality = DefaultConvertQuality
	}
	name := ConvertedFileName(src.Name(), ch.Request.Format)
	return storeImage(ctx, ch.env.Store, ch.Request.Destination, name, img, ch.Request.Format, quality, func(r *pkg.Result) {
		r.Percent = 100
	})
}

func loadImage(ctx context.Context, store Store, source string) (image.Image, pkg.Format, error) {
	loc, err := ParseLocation(source)
	if err != nil {
		return nil, "", fmt.Errorf("%v: %w", err, ErrInvalidRequest)
	}
	data, err := store.Load(ctx, loc)
	if err != nil {
		return nil, "", err
	}
	return Decode(data)
}

func storeImage(ctx context.Context, store Store, destination, name string, img image.Image,
	format pkg.Format, quality int, fill func(*pkg.Result)) (*pkg.Result, error) {
	data, err := EncodeBytes(img, format, quality)
	if err != nil {
		return nil, err
	}
	dest, err := ParseLocation(destination)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrInvalidRequest)
	}
	dest = dest.Join(name)
	if err := store.Save(ctx, dest, data, MIME(format)); err != nil {
		return nil, err
	}
	dims := pkg.DimensionsOf(img)
	res := &pkg.Result{
		FileName: name,
		Path:     dest.String(),
		Format:   format,
		MIME:     MIME(format),
		Width:    dims.Width,
		Height:   dims.Height,
		Bytes:    len(data),
	}
	fill(res)
	return res, nil
}
