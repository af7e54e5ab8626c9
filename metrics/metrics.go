package metrics

import (
  "time"

  "github.com/prometheus/client_golang/prometheus"

  "github.com/Ketansuhaas/brain-connect/device"
)

var (
  descAttention = prometheus.NewDesc(
    "eeg_attention_level",
    "Attention level reported by the headset (0-100).",
    []string{"name"},
    nil,
  )

  descMeditation = prometheus.NewDesc(
    "eeg_meditation_level",
    "Meditation level reported by the headset (0-100).",
    []string{"name"},
    nil,
  )

  descBand = prometheus.NewDesc(
    "eeg_band_level",
    "EEG frequency band amplitude scaled to 0-100.",
    []string{"name", "band"},
    nil,
  )

  descSignalQuality = prometheus.NewDesc(
    "eeg_signal_quality_score",
    "Heuristic signal confidence for the active stream. Approximate, not a physical measurement.",
    []string{"name"},
    nil,
  )
)

// CollectFunc returns the device name, the latest reading and when it was
// decoded. ok is false until the first packet has been decoded, in which case
// nothing is exported yet.
type CollectFunc func() (name string, r device.Reading, ts time.Time, ok bool)

type collector struct {
  CollectFunc
}

func (c *collector) Describe(ch chan<- *prometheus.Desc) {
  prometheus.DescribeByCollect(c, ch)
}

func (c *collector) Collect(ch chan<- prometheus.Metric) {
  name, reading, ts, ok := c.CollectFunc()

  if !ok {
    return
  }

  attention := prometheus.MustNewConstMetric(
    descAttention,
    prometheus.GaugeValue,
    float64(reading.Attention),
    name,
  )

  ch <- prometheus.NewMetricWithTimestamp(ts, attention)

  meditation := prometheus.MustNewConstMetric(
    descMeditation,
    prometheus.GaugeValue,
    float64(reading.Meditation),
    name,
  )

  ch <- prometheus.NewMetricWithTimestamp(ts, meditation)

  if reading.HasBands {
    bands := map[string]float32{
      "delta": reading.Delta,
      "theta": reading.Theta,
      "alpha": reading.Alpha,
      "beta":  reading.Beta,
      "gamma": reading.Gamma,
    }

    for band, value := range bands {
      metric := prometheus.MustNewConstMetric(
        descBand,
        prometheus.GaugeValue,
        float64(value),
        name,
        band,
      )

      ch <- prometheus.NewMetricWithTimestamp(ts, metric)
    }
  }

  if reading.HasSignalQuality {
    quality := prometheus.MustNewConstMetric(
      descSignalQuality,
      prometheus.GaugeValue,
      float64(reading.SignalQuality),
      name,
    )

    ch <- prometheus.NewMetricWithTimestamp(ts, quality)
  }
}

func RegisterCollector(f CollectFunc, reg prometheus.Registerer) {
  c := &collector{f}

  reg.MustRegister(c)
}
