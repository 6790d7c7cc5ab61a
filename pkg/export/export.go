package export

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/sidprasad/caraspace/pkg/bundle"
	"github.com/sidprasad/caraspace/pkg/decor"
	"github.com/sidprasad/caraspace/pkg/errors"
	"github.com/sidprasad/caraspace/pkg/observability"
	"github.com/sidprasad/caraspace/pkg/shape"
)

// =============================================================================
// Options - Export Configuration
// =============================================================================

// Options configures an export session. The zero value is usable: logging
// is discarded and the process-wide decorator registry and annotation store
// are consulted.
type Options struct {
	// Logger receives debug-level walk traces. Defaults to a discard logger.
	Logger *log.Logger

	// Registry supplies type-level decorator sets. Defaults to the
	// process-wide registry.
	Registry *decor.Registry

	// Annotations supplies instance-level annotations. Defaults to the
	// process-wide store.
	Annotations *decor.Store

	// ExcludeType names one type whose decorators are skipped during
	// collection. The type's atoms and relations still export normally.
	ExcludeType string
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	if o.Registry == nil {
		o.Registry = decor.Default()
	}
	if o.Annotations == nil {
		o.Annotations = decor.DefaultStore()
	}
	return o
}

// =============================================================================
// Result - One Completed Session
// =============================================================================

// Result holds the output of one export session: the atom/relation bundle,
// the decorators collected along the walk (type-level sets once per type,
// instance annotations per annotated value), and the session's ID.
type Result struct {
	Bundle     bundle.Bundle
	Decorators decor.Set
	SessionID  string
}

// =============================================================================
// Export - Structure Walk
// =============================================================================

// Export walks a value's shape and produces its relational graph using
// default options. See ExportWith.
func Export(value any) (*Result, error) {
	return ExportWith(value, Options{})
}

// ExportWith walks a value's shape and produces its relational graph.
// Composites become atoms linked to their children by typed relations;
// primitives become labeled leaf atoms. The walk is deterministic: the same
// value yields the same atoms, IDs, and relation order on every run.
//
// The export side never fails on data: any describable value exports.
// Errors indicate values without a shape descriptor (UNSUPPORTED_SHAPE),
// relation name collisions with incompatible signatures
// (RELATION_SIGNATURE_CONFLICT), or instance annotations whose selectors do
// not resolve (UNRESOLVED_SELECTOR).
func ExportWith(value any, opts Options) (*Result, error) {
	opts = opts.withDefaults()

	sessionID := uuid.NewString()
	hooks := observability.Export()
	hooks.OnSessionStart(sessionID)
	start := time.Now()

	logger := opts.Logger.With("session", sessionID)
	logger.Debug("export session started")

	s := &session{
		id:        sessionID,
		builder:   NewBuilder(),
		logger:    logger,
		hooks:     hooks,
		opts:      opts,
		refs:      make(map[any]string),
		pending:   make(map[any]bool),
		seenTypes: make(map[string]bool),
	}

	if _, err := s.exportValue(value); err != nil {
		logger.Error("export session failed", "error", err)
		hooks.OnSessionComplete(sessionID, 0, 0, time.Since(start), err)
		return nil, err
	}

	b := s.builder.Finalize()
	logger.Debug("export session complete",
		"atoms", len(b.Atoms), "relations", len(b.Relations), "decorators", s.decorators.Len())
	hooks.OnSessionComplete(sessionID, len(b.Atoms), len(b.Relations), time.Since(start), nil)

	return &Result{Bundle: b, Decorators: s.decorators, SessionID: sessionID}, nil
}

// =============================================================================
// Session - Walk State
// =============================================================================

// session carries the state of one walk: the builder, the identity map for
// tracked references, reference keys awaiting an atom, the types whose
// decorators were already collected, and the decorator accumulator.
type session struct {
	id      string
	builder *Builder
	logger  *log.Logger
	hooks   observability.ExportHooks
	opts    Options

	// refs maps reference identity keys to the atom exported for their
	// referent. pending holds keys whose referent is currently being
	// exported; they bind to the next allocated atom, which is what makes
	// cyclic references terminate.
	refs    map[any]string
	pending map[any]bool

	seenTypes  map[string]bool
	decorators decor.Set
}

// exportValue classifies a value and dispatches to its shape handler,
// returning the ID of the atom representing the value.
func (s *session) exportValue(v any) (string, error) {
	node, err := shape.Describe(v)
	if err != nil {
		return "", err
	}
	if err := s.collectDecorators(v, node); err != nil {
		return "", err
	}

	switch node.Kind {
	case shape.KindPrimitive:
		if node.Singleton {
			return s.singleton(node.TypeName, node.Label), nil
		}
		return s.newAtom(node.TypeName, node.Label), nil

	case shape.KindStruct:
		return s.exportStruct(node.TypeName, node.TypeName, node.Fields)

	case shape.KindSeq:
		id := s.newAtom(bundle.TypeSequence, fmt.Sprintf("seq[%d]", len(node.Elems)))
		return id, s.exportElems(id, bundle.ParticipantContainer, node.Elems)

	case shape.KindTuple:
		id := s.newAtom(bundle.TypeTuple, fmt.Sprintf("tuple[%d]", len(node.Elems)))
		return id, s.exportElems(id, bundle.ParticipantContainer, node.Elems)

	case shape.KindTupleStruct:
		id := s.newAtom(bundle.TypeTupleStruct, node.TypeName)
		return id, s.exportElems(id, bundle.ParticipantContainer, node.Elems)

	case shape.KindMap:
		return s.exportMap(node)

	case shape.KindOption:
		if !node.Present {
			return s.singleton(bundle.TypeOption, "None"), nil
		}
		// A present option is transparent: no atom of its own.
		return s.exportValue(node.Inner)

	case shape.KindRef:
		return s.exportRef(node)

	case shape.KindUnit:
		return s.singleton(bundle.TypeUnit, "()"), nil

	case shape.KindUnitStruct:
		return s.singleton(bundle.TypeUnitStruct, node.TypeName), nil

	case shape.KindNewtype:
		return s.exportNewtype(bundle.TypeNewtype, node.TypeName, bundle.RelationValue, node.Inner)

	case shape.KindEnum:
		return s.exportEnum(node)

	default:
		return "", errors.New(errors.ErrCodeUnsupportedShape, "unhandled shape kind %s", node.Kind)
	}
}

// exportStruct emits the container atom and one binary field relation per
// field, named after the field with signature (type name, "atom").
func (s *session) exportStruct(typeName, label string, fields []shape.Field) (string, error) {
	id := s.newAtom(typeName, label)
	for _, f := range fields {
		childID, err := s.exportValue(f.Value)
		if err != nil {
			return "", err
		}
		err = s.tuple(f.Name,
			[]string{typeName, bundle.ParticipantAtom},
			[]string{id, childID})
		if err != nil {
			return "", err
		}
	}
	return id, nil
}

// exportElems links a positional container to its elements through the
// shared "idx" relation, one (container, position, element) tuple each.
func (s *session) exportElems(containerID, containerType string, elems []any) error {
	for i, e := range elems {
		childID, err := s.exportValue(e)
		if err != nil {
			return err
		}
		err = s.tuple(bundle.RelationIdx,
			[]string{containerType, bundle.ParticipantIndex, bundle.ParticipantAtom},
			[]string{containerID, strconv.Itoa(i), childID})
		if err != nil {
			return err
		}
	}
	return nil
}

// exportMap emits the container atom and one (map, key, value) tuple per
// entry in the shared "map_entry" relation. Keys are exported as ordinary
// values.
func (s *session) exportMap(node shape.Node) (string, error) {
	id := s.newAtom(bundle.TypeMap, fmt.Sprintf("map[%d]", len(node.Entries)))
	for _, e := range node.Entries {
		keyID, err := s.exportValue(e.Key)
		if err != nil {
			return "", err
		}
		valID, err := s.exportValue(e.Value)
		if err != nil {
			return "", err
		}
		err = s.tuple(bundle.RelationMapEntry,
			[]string{bundle.ParticipantMap, bundle.ParticipantAtom, bundle.ParticipantAtom},
			[]string{id, keyID, valID})
		if err != nil {
			return "", err
		}
	}
	return id, nil
}

// exportRef resolves a reference wrapper. Tracked referents (RefKey set)
// export once and reuse their atom on every revisit; the pending-key set
// binds keys to the referent's atom even while that atom's children are
// still being walked, so cycles close instead of recursing. A key revisited
// while still pending means the chain since its first visit produced no
// atom at all (references forwarding to references), so there is nothing
// the cycle could ever bind to and the walk fails instead of recursing.
func (s *session) exportRef(node shape.Node) (string, error) {
	if node.RefKey == nil {
		return s.exportValue(node.Inner)
	}
	if id, ok := s.refs[node.RefKey]; ok {
		s.logger.Debug("reference revisit", "atom", id)
		return id, nil
	}
	if s.pending[node.RefKey] {
		return "", errors.New(errors.ErrCodeUnsupportedShape,
			"reference cycle resolves to no value: every node in the cycle is a reference")
	}
	s.pending[node.RefKey] = true
	return s.exportValue(node.Inner)
}

// exportNewtype emits the wrapper atom and links the wrapped value through
// the given relation ("value" for newtype structs, "variant_value" for
// newtype variants).
func (s *session) exportNewtype(typeName, label, relation string, inner any) (string, error) {
	id := s.newAtom(typeName, label)
	childID, err := s.exportValue(inner)
	if err != nil {
		return "", err
	}
	err = s.tuple(relation,
		[]string{bundle.ParticipantContainer, bundle.ParticipantAtom},
		[]string{id, childID})
	if err != nil {
		return "", err
	}
	return id, nil
}

// exportEnum dispatches on the active variant's payload kind. The atom is
// typed by the enum and labeled by the variant; unit variants collapse to
// one shared atom per (enum, variant) pair.
func (s *session) exportEnum(node shape.Node) (string, error) {
	switch node.VariantKind {
	case shape.KindUnit:
		return s.singleton(node.TypeName, node.Variant), nil
	case shape.KindStruct:
		return s.exportStruct(node.TypeName, node.Variant, node.Fields)
	case shape.KindTuple:
		id := s.newAtom(node.TypeName, node.Variant)
		return id, s.exportElems(id, bundle.ParticipantContainer, node.Elems)
	case shape.KindNewtype:
		return s.exportNewtype(node.TypeName, node.Variant, bundle.RelationVariantValue, node.Inner)
	default:
		return "", errors.New(errors.ErrCodeUnsupportedShape,
			"enum %s: unhandled variant kind %s", node.TypeName, node.VariantKind)
	}
}

// =============================================================================
// Emission Helpers
// =============================================================================

// newAtom allocates an atom, binds any pending reference keys to it, and
// fires observability hooks.
func (s *session) newAtom(typeName, label string) string {
	id := s.builder.NewAtom(typeName, label)
	s.bindPending(id)
	s.hooks.OnAtom(s.id, id, typeName)
	s.logger.Debug("atom", "id", id, "type", typeName, "label", label)
	return id
}

// singleton returns the shared atom for a (type, label) pair, allocating
// and binding on first use only.
func (s *session) singleton(typeName, label string) string {
	before := len(s.builder.atoms)
	id := s.builder.Singleton(typeName, label)
	if len(s.builder.atoms) != before {
		s.bindPending(id)
		s.hooks.OnAtom(s.id, id, typeName)
		s.logger.Debug("atom", "id", id, "type", typeName, "label", label, "singleton", true)
	} else {
		s.bindPending(id)
	}
	return id
}

// bindPending resolves every pending reference key to the given atom.
func (s *session) bindPending(id string) {
	for key := range s.pending {
		s.refs[key] = id
	}
	clear(s.pending)
}

func (s *session) tuple(name string, types, atoms []string) error {
	if err := s.builder.AddTuple(name, types, atoms); err != nil {
		return err
	}
	s.hooks.OnRelationTuple(s.id, name)
	return nil
}

// collectDecorators gathers decorators for a named value: the registered
// type-level set once per type per session, then the value's own annotation
// log with its selectors checked against the value's shape. Types named by
// ExcludeType are skipped entirely.
func (s *session) collectDecorators(v any, node shape.Node) error {
	if node.TypeName == "" || node.TypeName == s.opts.ExcludeType {
		return nil
	}

	if !s.seenTypes[node.TypeName] {
		s.seenTypes[node.TypeName] = true
		if typeSet, ok := s.opts.Registry.Lookup(node.TypeName); ok {
			s.logger.Debug("collected type decorators", "type", node.TypeName, "count", typeSet.Len())
			s.decorators.Extend(typeSet)
		}
	}

	if _, ok := v.(shape.Descriptor); !ok {
		return nil
	}
	overlay := s.opts.Annotations.InstanceSet(v)
	if overlay.IsEmpty() {
		return nil
	}
	for _, c := range overlay.Constraints {
		if err := decor.ResolveSelector(c.Selector(), node); err != nil {
			return err
		}
	}
	for _, d := range overlay.Directives {
		if err := decor.ResolveSelector(d.Selector(), node); err != nil {
			return err
		}
	}
	s.logger.Debug("collected instance annotations", "type", node.TypeName, "count", overlay.Len())
	s.decorators.Extend(overlay)
	return nil
}
