// Package indicator computes technical indicators over closing-price series.
//
// Every function returns slices exactly as long as the input, padded with NaN
// where not enough history exists yet, so indicator values stay aligned
// index-for-index with the candles they were computed from. Inputs are never
// mutated.
package indicator

import "math"

// Default periods used by the chart endpoints.
const (
	DefaultSMAPeriod       = 20
	DefaultEMAPeriod       = 9
	DefaultRSIPeriod       = 14
	DefaultMACDFast        = 12
	DefaultMACDSlow        = 26
	DefaultMACDSignal      = 9
	DefaultBollingerPeriod = 20
	DefaultBollingerStdDev = 2.0
)

// SMA is the arithmetic mean of a trailing window. The first period-1
// positions are NaN.
func SMA(values []float64, period int) []float64 {
	out := nanSlice(len(values))
	if period <= 0 || len(values) < period {
		return out
	}

	var sum float64
	for i, v := range values {
		sum += v
		if i >= period {
			sum -= values[i-period]
		}
		if i >= period-1 {
			out[i] = sum / float64(period)
		}
	}
	return out
}

// EMA seeds with the SMA of the first period points, then applies
// (current − previous) × multiplier + previous with multiplier 2/(period+1).
func EMA(values []float64, period int) []float64 {
	out := nanSlice(len(values))
	if period <= 0 || len(values) < period {
		return out
	}

	var seed float64
	for _, v := range values[:period] {
		seed += v
	}
	seed /= float64(period)
	out[period-1] = seed

	multiplier := 2 / float64(period+1)
	prev := seed
	for i := period; i < len(values); i++ {
		prev = (values[i]-prev)*multiplier + prev
		out[i] = prev
	}
	return out
}

// RSI uses the average gain/loss of the first period deltas as the seed and
// Wilder smoothing afterwards. A completely flat market reads 50, not an
// extreme; zero losses with any gain read 100.
func RSI(values []float64, period int) []float64 {
	out := nanSlice(len(values))
	if period <= 0 || len(values) < period+1 {
		return out
	}

	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		delta := values[i] - values[i-1]
		if delta > 0 {
			avgGain += delta
		} else {
			avgLoss -= delta
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)
	out[period] = rsiValue(avgGain, avgLoss)

	for i := period + 1; i < len(values); i++ {
		delta := values[i] - values[i-1]
		gain, loss := 0.0, 0.0
		if delta > 0 {
			gain = delta
		} else {
			loss = -delta
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
		out[i] = rsiValue(avgGain, avgLoss)
	}
	return out
}

func rsiValue(avgGain, avgLoss float64) float64 {
	if avgGain == 0 && avgLoss == 0 {
		return 50
	}
	if avgLoss == 0 {
		return 100
	}
	return 100 - 100/(1+avgGain/avgLoss)
}

// MACD returns the MACD line (fast EMA − slow EMA over their overlapping
// defined range), the signal line (EMA of the MACD line's defined values),
// and the histogram (MACD − signal where both are defined).
func MACD(values []float64, fast, slow, signal int) (macd, signalLine, histogram []float64) {
	n := len(values)
	macd = nanSlice(n)
	signalLine = nanSlice(n)
	histogram = nanSlice(n)

	fastEMA := EMA(values, fast)
	slowEMA := EMA(values, slow)

	defined := make([]float64, 0, n)
	firstDefined := -1
	for i := 0; i < n; i++ {
		if math.IsNaN(fastEMA[i]) || math.IsNaN(slowEMA[i]) {
			continue
		}
		macd[i] = fastEMA[i] - slowEMA[i]
		if firstDefined < 0 {
			firstDefined = i
		}
		defined = append(defined, macd[i])
	}
	if firstDefined < 0 {
		return macd, signalLine, histogram
	}

	compactSignal := EMA(defined, signal)
	for j, v := range compactSignal {
		signalLine[firstDefined+j] = v
	}
	for i := 0; i < n; i++ {
		if !math.IsNaN(macd[i]) && !math.IsNaN(signalLine[i]) {
			histogram[i] = macd[i] - signalLine[i]
		}
	}
	return macd, signalLine, histogram
}

// BollingerBands returns middle (SMA), upper, and lower bands, the outer two
// offset by stdDev population standard deviations of the trailing window.
func BollingerBands(values []float64, period int, stdDev float64) (middle, upper, lower []float64) {
	n := len(values)
	middle = SMA(values, period)
	upper = nanSlice(n)
	lower = nanSlice(n)
	if period <= 0 || n < period {
		return middle, upper, lower
	}

	for i := period - 1; i < n; i++ {
		mean := middle[i]
		var variance float64
		for _, v := range values[i-period+1 : i+1] {
			variance += (v - mean) * (v - mean)
		}
		sd := math.Sqrt(variance / float64(period))
		upper[i] = mean + stdDev*sd
		lower[i] = mean - stdDev*sd
	}
	return middle, upper, lower
}

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}
