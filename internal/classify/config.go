package classify

import "github.com/mr1hm/go-sachet-alerts/internal/models"

const DefaultKey = "default"

type Keyword struct {
	Word   string
	Weight float64
}

// TypeConfig is the display metadata and keyword weights for one type key.
type TypeConfig struct {
	Key      string
	Label    string
	IconName string // Material Symbols name
	Color    string
	Image    string
	Keywords []Keyword
}

func image(name string) string {
	return "/assets/disaster/" + name + ".png"
}

// typeConfigs is evaluated in order; on equal scores the earlier key wins.
var typeConfigs = []TypeConfig{
	{
		Key: "flood", Label: "Flood", IconName: "flood", Color: "#2196F3", Image: image("flood"),
		Keywords: []Keyword{{"flood", 0.9}, {"overflow", 0.7}, {"water level", 0.6}, {"inundation", 0.8}},
	},
	{
		Key: "fire", Label: "Wildfire", IconName: "local_fire_department", Color: "#FF5722", Image: image("fire"),
		Keywords: []Keyword{{"fire", 0.9}, {"burn", 0.6}, {"flame", 0.7}, {"forest", 0.4}},
	},
	{
		Key: "cyclone", Label: "Cyclone", IconName: "cyclone", Color: "#00BCD4", Image: image("cyclone"),
		Keywords: []Keyword{{"cyclone", 0.9}, {"storm", 0.5}, {"hurricane", 0.9}, {"typhoon", 0.9}, {"wind", 0.3}},
	},
	{
		Key: "earthquake", Label: "Earthquake", IconName: "broken_image", Color: "#795548", Image: image("earthquake"),
		Keywords: []Keyword{{"earthquake", 0.9}, {"seismic", 0.8}, {"tremor", 0.7}, {"magnitude", 0.5}},
	},
	{
		Key: "drought", Label: "Drought", IconName: "water_loss", Color: "#FFC107", Image: image("drought"),
		Keywords: []Keyword{{"drought", 0.9}, {"dry", 0.4}, {"scarcity", 0.6}},
	},
	{
		Key: "landslide", Label: "Landslide", IconName: "landslide", Color: "#8D6E63", Image: image("landslide"),
		Keywords: []Keyword{{"landslide", 0.9}, {"mudslide", 0.8}, {"terrain", 0.4}},
	},
	{
		Key: "thunderstorm", Label: "Thunderstorm", IconName: "thunderstorm", Color: "#607D8B", Image: image("thunderstorm"),
		Keywords: []Keyword{{"thunderstorm", 0.9}, {"lightning", 0.8}, {"thunder", 0.7}},
	},
	{
		Key: "heatwave", Label: "Heatwave", IconName: "thermostat", Color: "#FF9800", Image: image("drought"),
		Keywords: []Keyword{{"heatwave", 0.9}, {"heat", 0.5}, {"temperature", 0.3}},
	},
	{
		Key: "coldwave", Label: "Coldwave", IconName: "ac_unit", Color: "#76A3D8", Image: image("coldwave"),
		Keywords: []Keyword{{"coldwave", 0.9}, {"cold", 0.5}, {"freeze", 0.7}, {"snow", 0.6}},
	},
	{
		Key: "fog", Label: "Fog", IconName: "foggy", Color: "#9E9E9E", Image: image("dust"),
		Keywords: []Keyword{{"fog", 0.9}, {"visibility", 0.7}, {"dense", 0.5}, {"smog", 0.8}},
	},
	{
		Key: "hail", Label: "Hail", IconName: "weather_hail", Color: "#78909C", Image: image("hail"),
		Keywords: []Keyword{{"hail", 0.9}, {"hailstorm", 0.9}, {"ice", 0.4}},
	},
	{
		Key: "dust", Label: "Dust Storm", IconName: "air", Color: "#BCAAA4", Image: image("dust"),
		Keywords: []Keyword{{"dust", 0.9}, {"sandstorm", 0.9}, {"sand", 0.5}},
	},
	{
		Key: DefaultKey, Label: "Alert", IconName: "warning", Color: "#607D8B", Image: image("flood"),
	},
}

var configByKey = func() map[string]*TypeConfig {
	m := make(map[string]*TypeConfig, len(typeConfigs))
	for i := range typeConfigs {
		m[typeConfigs[i].Key] = &typeConfigs[i]
	}
	return m
}()

// Config returns the display config for key, falling back to the default entry.
func Config(key string) TypeConfig {
	if c, ok := configByKey[key]; ok {
		return *c
	}
	return *configByKey[DefaultKey]
}

// Configs returns every type config in evaluation order.
func Configs() []TypeConfig {
	out := make([]TypeConfig, len(typeConfigs))
	copy(out, typeConfigs)
	return out
}

var severityColors = map[models.Severity]string{
	models.SeverityLow:      "#4CAF50",
	models.SeverityMedium:   "#FF9800",
	models.SeverityHigh:     "#F44336",
	models.SeverityCritical: "#9C27B0",
}

// SeverityColor returns the marker colour for s; unknown severities get medium's.
func SeverityColor(s models.Severity) string {
	if c, ok := severityColors[s]; ok {
		return c
	}
	return severityColors[models.SeverityMedium]
}
