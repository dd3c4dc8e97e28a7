package logs

import (
	"fmt"
	"sort"
	"strings"
)

// schema names the fields a given event must carry, so a call site that
// forgets one is caught in logs rather than in a dashboard query later.
type schema struct {
	Required []string
}

// eventSchemas is the registry Logger.emit consults before writing an
// event. Methods live on the type rather than as free functions over a
// package var, since the lookup-then-check behavior belongs to the
// registry, not to package-level state.
type eventSchemas map[string]schema

var registered = eventSchemas{
	"fill":             {Required: []string{"side", "qty", "price"}},
	"risk_transition":  {Required: []string{"risk_off", "inventory", "drawdown_usd"}},
	"skipped_tick":     {Required: []string{"reason"}},
	"malformed_record": {Required: []string{"error"}},
}

// known caches the sorted event names so repeated lookups (e.g. doc
// generation) don't re-sort on every call.
var known = func() []string {
	names := make([]string, 0, len(registered))
	for name := range registered {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}()

// Known returns every event name with a registered schema.
func Known() []string {
	out := make([]string, len(known))
	copy(out, known)
	return out
}

// validate marks off every required key it finds in fields and reports
// whatever is left over, rather than checking each required key's
// presence one at a time.
func (es eventSchemas) validate(event string, fields map[string]interface{}) error {
	s, ok := es[event]
	if !ok {
		return nil
	}
	outstanding := make(map[string]struct{}, len(s.Required))
	for _, key := range s.Required {
		outstanding[key] = struct{}{}
	}
	for key := range fields {
		delete(outstanding, key)
	}
	if len(outstanding) == 0 {
		return nil
	}
	missing := make([]string, 0, len(outstanding))
	for key := range outstanding {
		missing = append(missing, key)
	}
	sort.Strings(missing)
	return fmt.Errorf("missing fields: %s", strings.Join(missing, ","))
}

// Validate checks that fields carries every key the event's registered
// schema requires. Events with no registered schema pass unconditionally.
func Validate(event string, fields map[string]interface{}) error {
	return registered.validate(event, fields)
}
