package file

import (
	"fmt"
	"os"

	"github.com/aretw0/cadence/pkg/adapters/memory"
	"github.com/aretw0/cadence/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// fixture is the on-disk layout of a backend fixture:
//
//	objects:
//	  ServiceSession__c:
//	    apiName: ServiceSession__c
//	    label: Session
//	    labelPlural: Sessions
//	    fields:
//	      ServiceSchedule__c: {relationshipName: ServiceSchedule__r}
//	sessions:
//	  THIS_WEEK:
//	    "2026-10-12":
//	      - Id: a1
//	        Status__c: Complete
//	model:
//	  serviceSchedule: {Name: Morning Group}
//
// Session groups are kept as yaml.Node so their key order survives.
type fixture struct {
	Objects  map[string]map[string]any `yaml:"objects"`
	Sessions map[string]yaml.Node      `yaml:"sessions"`
	Model    map[string]any            `yaml:"model"`
}

// LoadFixture reads a YAML fixture file into an in-memory backend.
func LoadFixture(path string) (*memory.Backend, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture: %w", err)
	}
	return ParseFixture(data)
}

// ParseFixture decodes fixture bytes into an in-memory backend.
func ParseFixture(data []byte) (*memory.Backend, error) {
	var fx fixture
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("failed to parse fixture: %w", err)
	}

	backend := memory.NewBackend()

	for name, raw := range fx.Objects {
		var info domain.ObjectInfo
		if err := mapstructure.Decode(raw, &info); err != nil {
			return nil, fmt.Errorf("object %s: %w", name, err)
		}
		if info.APIName == "" {
			info.APIName = name
		}
		backend.PutObject(info)
	}

	for literal, node := range fx.Sessions {
		snap, err := decodeSnapshot(&node)
		if err != nil {
			return nil, fmt.Errorf("sessions %s: %w", literal, err)
		}
		backend.PutSessions(literal, snap)
	}

	if fx.Model != nil {
		var model domain.ScheduleModel
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			TagName: "json",
			Result:  &model,
		})
		if err != nil {
			return nil, err
		}
		if err := decoder.Decode(fx.Model); err != nil {
			return nil, fmt.Errorf("model: %w", err)
		}
		backend.PutModel(model)
	}

	return backend, nil
}

// decodeSnapshot walks a mapping node pair by pair.
func decodeSnapshot(node *yaml.Node) (domain.Snapshot, error) {
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("expected mapping of date keys, got %s", node.Tag)
	}

	snap := make(domain.Snapshot, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value

		var raw []map[string]any
		if err := node.Content[i+1].Decode(&raw); err != nil {
			return nil, fmt.Errorf("group %q: %w", key, err)
		}

		records := make([]domain.Record, 0, len(raw))
		for _, r := range raw {
			records = append(records, domain.Record(r))
		}
		snap = append(snap, domain.DateGroup{Key: key, Records: records})
	}
	return snap, nil
}
