package indicators

import "StockSage/internal/domain/models"

// Compute assembles the full IndicatorSnapshot for the most recent bar of
// the series. Indicators whose window exceeds the available history come
// back unavailable; nothing is silently shortened. The snapshot derives
// strictly from bars up to and including the last one, never from the
// future.
func Compute(bars []models.PriceBar, cfg models.AdvisorConfig) models.IndicatorSnapshot {
	var snap models.IndicatorSnapshot
	if len(bars) == 0 {
		return snap
	}
	closes := models.Closes(bars)
	volumes := models.Volumes(bars)
	snap.Close = closes[len(closes)-1]
	snap.Volume = volumes[len(volumes)-1]

	snap.SMAFast = SMA(closes, cfg.SMAFast)
	snap.SMASlow = SMA(closes, cfg.SMASlow)
	snap.SMALong = SMA(closes, cfg.SMALong)
	snap.EMAFast = EMA(closes, cfg.EMAFast)
	snap.EMASlow = EMA(closes, cfg.EMASlow)

	snap.RSI = RSI(closes, cfg.RSIWindow)
	snap.MACD, snap.MACDSignal, snap.MACDHist = MACD(closes, cfg.MACDFast, cfg.MACDSlow, cfg.MACDSignal)
	snap.BBUpper, snap.BBMid, snap.BBLower = Bollinger(closes, cfg.BBWindow, cfg.BBWidth)

	snap.ATR = ATR(bars, cfg.ATRWindow)
	snap.OBV = OBV(bars)

	snap.VolumeAvg10 = SMA(volumes, 10)
	snap.VolumeAvg20 = SMA(volumes, 20)
	snap.VolumeAvg50 = SMA(volumes, 50)

	return snap
}
