/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package color

import (
	"reflect"
	"sync"
)

// TransferFunc is an optional per-channel or vector function applied after
// color conversion and before compositing (e.g. a soft-mask or
// transparency-group transfer function). Its identity (not its value) is
// part of the sampler memoization key, matching the component design's
// "(converter identity, intent, transfer-function identity)" cache key.
type TransferFunc func(rgba [4]float64) [4]float64

// RGBASampler maps device color components (padded to 4) to 8-bit RGBA,
// for a fixed (profile, intent, transfer function) triple.
type RGBASampler func(comps []float64) (r, g, b, a uint8)

type samplerKey struct {
	profile  *Profile
	intent   RenderingIntent
	transfer uintptr
}

var (
	samplerCacheMu sync.Mutex
	samplerCache   sync.Map // samplerKey -> RGBASampler
)

func funcIdentity(f TransferFunc) uintptr {
	if f == nil {
		return 0
	}
	return reflect.ValueOf(f).Pointer()
}

// NewRGBASampler resolves the memoized RGBA sampler for (profile, intent,
// post). Concurrent callers sharing the same (profile, intent, post)
// triple share a single built ColorTransform; the cache guards insertion
// with a coarse mutex and takes no lock on a successful lookup, matching
// §5's document-level cache discipline.
func NewRGBASampler(p *Profile, intent RenderingIntent, post TransferFunc) (RGBASampler, error) {
	key := samplerKey{profile: p, intent: intent, transfer: funcIdentity(post)}

	if s, ok := samplerCache.Load(key); ok {
		return s.(RGBASampler), nil
	}

	transform, err := p.Transform(intent)
	if err != nil {
		return nil, err
	}

	sampler := func(comps []float64) (uint8, uint8, uint8, uint8) {
		rgb := transform.Apply(comps)
		out := [4]float64{rgb[0], rgb[1], rgb[2], 1}
		if post != nil {
			out = post(out)
		}
		return to8(out[0]), to8(out[1]), to8(out[2]), to8(out[3])
	}

	samplerCacheMu.Lock()
	defer samplerCacheMu.Unlock()
	if s, ok := samplerCache.Load(key); ok {
		return s.(RGBASampler), nil
	}
	samplerCache.Store(key, RGBASampler(sampler))

	return sampler, nil
}

func to8(v float64) uint8 {
	v = clamp01(v)
	return uint8(v*255 + 0.5)
}
