// Copyright 2026 The engiffen authors.
// SPDX-License-Identifier: Apache-2.0

package engiffen

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	poolSummary = prometheus.NewSummary(prometheus.SummaryOpts{
		Name: "engiffen_pixel_pool_seconds",
		Help: "Time taken to pool frame pixels in seconds.",
	})
	quantizeSummary = prometheus.NewSummary(prometheus.SummaryOpts{
		Name: "engiffen_quantize_seconds",
		Help: "Time taken to compute the palette in seconds.",
	})
	palettizeSummary = prometheus.NewSummary(prometheus.SummaryOpts{
		Name: "engiffen_palettize_seconds",
		Help: "Time taken to map pixels to palette indices in seconds.",
	})
	encodeSummary = prometheus.NewSummary(prometheus.SummaryOpts{
		Name: "engiffen_encode_seconds",
		Help: "Time taken to serialize the output stream in seconds.",
	})
	framesEncoded = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "engiffen_frames_encoded_total",
		Help: "Total frames quantized and encoded.",
	})
)

func init() {
	prometheus.MustRegister(poolSummary)
	prometheus.MustRegister(quantizeSummary)
	prometheus.MustRegister(palettizeSummary)
	prometheus.MustRegister(encodeSummary)
	prometheus.MustRegister(framesEncoded)
}
