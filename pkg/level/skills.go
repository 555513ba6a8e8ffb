package level

// NoSkill is the ordinal returned for names that are not registered,
// including the reserved empty-string placeholder.
const NoSkill = -1

// Registry assigns each skill name a dense ordinal in first-seen order.
// Ordinals index directly into bit sets, so all skill-set operations
// stay allocation-light. The zero value is not usable; call NewRegistry.
type Registry struct {
	byName map[string]int
	names  []string
}

// NewRegistry creates an empty skill registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]int)}
}

// Register assigns the next sequential ordinal to name, or returns the
// existing ordinal if name was registered before. The empty string is
// the "no skill" placeholder (the config dialect forbids empty arrays)
// and is never registered; it yields NoSkill.
func (r *Registry) Register(name string) int {
	if name == "" {
		return NoSkill
	}
	if ord, ok := r.byName[name]; ok {
		return ord
	}
	ord := len(r.names)
	r.byName[name] = ord
	r.names = append(r.names, name)
	return ord
}

// Lookup returns the ordinal for name. Absence is not an error at this
// layer; callers decide whether an unresolved name is dropped or fatal.
func (r *Registry) Lookup(name string) (int, bool) {
	ord, ok := r.byName[name]
	return ord, ok
}

// Name returns the skill name for an ordinal, or "" if out of range.
func (r *Registry) Name(ordinal int) string {
	if ordinal < 0 || ordinal >= len(r.names) {
		return ""
	}
	return r.names[ordinal]
}

// Len returns the number of registered skills.
func (r *Registry) Len() int { return len(r.names) }

// Names returns the skill names for each ordinal in a set, ascending.
func (r *Registry) Names(s Set) []string {
	ords := s.Ordinals()
	names := make([]string, 0, len(ords))
	for _, o := range ords {
		names = append(names, r.Name(o))
	}
	return names
}
