package ipm

import (
	"embed"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"agriguard/api"
)

//go:embed diseases.yaml
var diseasesFS embed.FS

var (
	databaseOnce sync.Once
	diseaseDB    map[string]api.DiseaseInfo
)

func database() map[string]api.DiseaseInfo {
	databaseOnce.Do(func() {
		diseaseDB = make(map[string]api.DiseaseInfo)
		raw, err := diseasesFS.ReadFile("diseases.yaml")
		if err != nil {
			return
		}
		if err := yaml.Unmarshal(raw, &diseaseDB); err != nil {
			diseaseDB = map[string]api.DiseaseInfo{}
		}
	})
	return diseaseDB
}

// Database returns the full preset disease reference keyed by id.
func Database() map[string]api.DiseaseInfo {
	return database()
}

// DiseaseKeys returns the database keys in sorted order.
func DiseaseKeys() []string {
	db := database()
	keys := make([]string, 0, len(db))
	for key := range db {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// LookupDisease finds a preset entry by key, case-insensitively.
func LookupDisease(key string) (api.DiseaseInfo, bool) {
	info, ok := database()[strings.ToLower(key)]
	return info, ok
}
