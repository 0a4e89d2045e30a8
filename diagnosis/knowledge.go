package diagnosis

// Pest describes a crop pest and the damage it causes.
type Pest struct {
	Name   string `json:"name"`
	Damage string `json:"damage"`
}

// CommonDiseases lists the diseases most frequently seen per crop.
var CommonDiseases = map[string][]string{
	"tomato": {
		"Late Blight", "Early Blight", "Septoria Leaf Spot",
		"Bacterial Spot", "Tomato Yellow Leaf Curl", "Fusarium Wilt",
	},
	"potato": {
		"Late Blight", "Early Blight", "Black Scurf",
		"Common Scab", "Potato Virus Y",
	},
	"rice": {
		"Rice Blast", "Bacterial Leaf Blight", "Brown Spot",
		"Sheath Blight", "Tungro Disease",
	},
	"wheat": {
		"Wheat Rust", "Powdery Mildew", "Septoria",
		"Fusarium Head Blight", "Take-all",
	},
	"corn": {
		"Gray Leaf Spot", "Northern Corn Leaf Blight",
		"Common Rust", "Southern Corn Leaf Blight",
	},
	"cotton": {
		"Cotton Leaf Curl", "Bacterial Blight", "Alternaria Leaf Spot",
		"Fusarium Wilt", "Verticillium Wilt",
	},
}

// CommonPests lists pests by crop; the "universal" entry applies to
// every crop.
var CommonPests = map[string][]Pest{
	"universal": {
		{Name: "Aphids", Damage: "Sap sucking, virus transmission"},
		{Name: "Whiteflies", Damage: "Sap sucking, sooty mold"},
		{Name: "Spider Mites", Damage: "Leaf stippling, webbing"},
		{Name: "Thrips", Damage: "Leaf scarring, virus transmission"},
		{Name: "Caterpillars", Damage: "Leaf eating, fruit damage"},
	},
	"corn": {
		{Name: "Fall Armyworm", Damage: "Severe leaf and ear damage"},
		{Name: "Corn Borer", Damage: "Stalk tunneling"},
		{Name: "Corn Earworm", Damage: "Ear tip damage"},
	},
	"cotton": {
		{Name: "Bollworm", Damage: "Boll destruction"},
		{Name: "Pink Bollworm", Damage: "Seed and lint damage"},
	},
}

// KnownThreats returns the diseases and pests to watch for a crop.
// Universal pests are always included; unknown crops get only those.
func KnownThreats(crop string) ([]string, []Pest) {
	diseases := CommonDiseases[crop]
	pests := append([]Pest{}, CommonPests["universal"]...)
	if cropPests, ok := CommonPests[crop]; ok {
		pests = append(pests, cropPests...)
	}
	return diseases, pests
}
