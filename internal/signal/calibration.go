package signal

import (
	"math"

	"signal-desk/internal/domain"
)

const DefaultCalibrationThreshold = 0.5

// Calibrate reconciles the last historical close with an optional live quote. A usable live
// quote always becomes the calibrated price; levels are only shifted once it drifts past the
// threshold. A live quote that is non-finite or non-positive counts as absent.
func Calibrate(rawPrice, livePrice float64, hasLive bool, threshold float64) domain.CalibrationResult {
	if !hasLive || !isFinite(livePrice) || livePrice <= 0 {
		return domain.CalibrationResult{CalibratedPrice: rawPrice, RawPrice: rawPrice}
	}

	if math.Abs(livePrice-rawPrice) > threshold {
		return domain.CalibrationResult{
			CalibratedPrice: livePrice,
			RawPrice:        rawPrice,
			Offset:          livePrice - rawPrice,
			IsLive:          true,
		}
	}
	return domain.CalibrationResult{CalibratedPrice: livePrice, RawPrice: rawPrice, IsLive: true}
}
