package analytics

import "sort"

// ActivityLocationID is the only location the "by location" activity view
// returns. The view never honors a caller-supplied location; this mirrors the
// deployed dashboard and is kept until the behavior is confirmed or changed.
const ActivityLocationID = "Haacklee"

// CargoVesselType is the Vessel.type value of cargo vessels.
const CargoVesselType = "Entity.Vessel.CargoVessel"

// FishingActivities are the activities that make a location a legitimate
// fishing ground in the combined cargo/fish correlation.
var FishingActivities = []string{"Deep Sea Fishing", "Commercial Fishing"}

// trendWatchList is the closed set of vessels monitored by the trend views.
var trendWatchList = map[string]struct{}{
	"roachrobberdb6":              {},
	"snappersnatcher7be":          {},
	"wavewranglerc2d":             {},
	"arcticgraylingangler094":     {},
	"pompanoplunderere5d":         {},
	"bigeyetunabanditb73":         {},
	"europeanseabassbuccaneer777": {},
	"huron1b3":                    {},
	"plaiceplundererba1":          {},
	"whitemarlinwranglerbac":      {},
	"catfishcapturer7a8":          {},
	"opheliacac":                  {},
}

// TrendWatchList returns the watch-list vessel ids in sorted order.
func TrendWatchList() []string {
	ids := make([]string, 0, len(trendWatchList))
	for id := range trendWatchList {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func OnTrendWatchList(vesselID string) bool {
	_, ok := trendWatchList[vesselID]
	return ok
}
