// Package lookup builds and queries the whitelist: the only view of the host type universe that a script
// compilation can reach.
package lookup

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/maruel/natural"
	"github.com/tidwall/btree"
	"golang.org/x/exp/maps"

	"github.com/inoxlang/scriptc/internal/config"
	"github.com/inoxlang/scriptc/internal/types"
	"github.com/inoxlang/scriptc/internal/utils"
)

const (
	MAX_SUGGESTION_DIFF = 2
)

var (
	ErrMissingVersion = errors.New("missing whitelist version")
)

// A Snapshot is an immutable, indexed whitelist. It is safe for concurrent use by any number of compilations.
type Snapshot struct {
	version *semver.Version

	types  map[string]*types.Type
	supers map[*types.Type]*types.Type //reference type -> direct supertype

	constructors btree.Map[string, *Constructor]
	methods      btree.Map[string, *Method]
}

// Build checks a whitelist description and indexes it, all errors found in the description are reported.
func Build(desc *Description) (*Snapshot, error) {
	version, err := checkVersion(desc)
	if err != nil {
		return nil, err
	}

	s := &Snapshot{
		version: version,
		types:   map[string]*types.Type{},
		supers:  map[*types.Type]*types.Type{},
	}

	var errs []error

	//declare the types before resolving anything so that members can reference any class.

	for _, t := range types.Builtins() {
		s.types[t.Name()] = t
		if super := types.BuiltinSuper(t); super != nil {
			s.supers[t] = super
		}
	}

	declared := make([]*types.Type, 0, len(desc.Classes))
	classes := make(map[*types.Type]ClassDescription, len(desc.Classes))

	for _, class := range desc.Classes {
		t, err := s.declareClass(class, classes)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		declared = append(declared, t)
		classes[t] = class
	}

	for _, t := range declared {
		if err := s.resolveSuper(t, classes[t]); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) == 0 {
		for _, t := range declared {
			if err := s.checkNoCycle(t); err != nil {
				errs = append(errs, err)
			}
		}
	}

	if len(errs) > 0 {
		return nil, utils.CombineErrorsWithPrefixMessage("invalid whitelist", errs...)
	}

	for _, t := range declared {
		errs = append(errs, s.indexMembers(t, classes[t])...)
	}

	if len(errs) > 0 {
		return nil, utils.CombineErrorsWithPrefixMessage("invalid whitelist", errs...)
	}

	s.inheritMethods()
	return s, nil
}

func checkVersion(desc *Description) (*semver.Version, error) {
	if desc.Version == "" {
		return nil, ErrMissingVersion
	}

	version, err := semver.NewVersion(desc.Version)
	if err != nil {
		return nil, fmt.Errorf("invalid whitelist version %q: %w", desc.Version, err)
	}

	if desc.Requires != "" {
		constraint, err := semver.NewConstraint(desc.Requires)
		if err != nil {
			return nil, fmt.Errorf("invalid language version constraint %q: %w", desc.Requires, err)
		}

		langVersion := semver.MustParse(config.LANGUAGE_VERSION)
		if !constraint.Check(langVersion) {
			return nil, fmt.Errorf("whitelist %s requires language version %s, current version is %s", version, desc.Requires, langVersion)
		}
	}

	return version, nil
}

func (s *Snapshot) declareClass(class ClassDescription, classes map[*types.Type]ClassDescription) (*types.Type, error) {
	if class.Name == "" {
		return nil, errors.New("class with no name")
	}

	t, ok := s.types[class.Name]
	if ok {
		if _, alreadyDeclared := classes[t]; alreadyDeclared {
			return nil, fmt.Errorf("class %s is declared twice", class.Name)
		}
		if !t.IsReference() {
			return nil, fmt.Errorf("class %s: members cannot be declared on type %s", class.Name, t.Name())
		}
		return t, nil
	}

	t = types.NewReference(class.Name)
	s.types[class.Name] = t
	return t, nil
}

func (s *Snapshot) resolveSuper(t *types.Type, class ClassDescription) error {
	if class.Extends == "" {
		if t != types.Object {
			s.supers[t] = types.Object
		}
		return nil
	}

	super, ok := s.types[class.Extends]
	if !ok {
		return fmt.Errorf("class %s extends unknown type %s", t.Name(), class.Extends)
	}
	if !super.IsReference() {
		return fmt.Errorf("class %s cannot extend non reference type %s", t.Name(), super.Name())
	}
	if t == types.Object {
		return fmt.Errorf("class %s cannot have a supertype", t.Name())
	}

	s.supers[t] = super
	return nil
}

func (s *Snapshot) checkNoCycle(t *types.Type) error {
	visited := map[*types.Type]struct{}{}

	for current := t; current != nil; current = s.supers[current] {
		if _, ok := visited[current]; ok {
			return fmt.Errorf("cyclic inheritance involving class %s", t.Name())
		}
		visited[current] = struct{}{}
	}
	return nil
}

func (s *Snapshot) resolveTypeName(name string) (*types.Type, error) {
	t, ok := s.types[name]
	if !ok {
		return nil, fmt.Errorf("unknown type %s", name)
	}
	return t, nil
}

func (s *Snapshot) resolveParams(owner *types.Type, member string, names []string) ([]*types.Type, error) {
	params := make([]*types.Type, 0, len(names))
	for _, name := range names {
		t, err := s.resolveTypeName(name)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", owner.Name(), member, err)
		}
		if t.IsVoid() {
			return nil, fmt.Errorf("%s.%s: a parameter cannot be of type void", owner.Name(), member)
		}
		params = append(params, t)
	}
	return params, nil
}

func (s *Snapshot) indexMembers(owner *types.Type, class ClassDescription) (errs []error) {
	for _, ctorDesc := range class.Constructors {
		params, err := s.resolveParams(owner, CONSTRUCTOR_NAME, ctorDesc.Params)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		key := constructorIndexKey(owner, len(params))
		if _, ok := s.constructors.Get(key); ok {
			errs = append(errs, fmt.Errorf("%s: duplicate constructor %s", owner.Name(), memberKey(CONSTRUCTOR_NAME, len(params))))
			continue
		}

		s.constructors.Set(key, &Constructor{Owner: owner, Params: params})
	}

	indexMethods := func(descs []MethodDescription, static bool) {
		for _, methodDesc := range descs {
			if methodDesc.Name == "" {
				errs = append(errs, fmt.Errorf("%s: method with no name", owner.Name()))
				continue
			}

			params, err := s.resolveParams(owner, methodDesc.Name, methodDesc.Params)
			if err != nil {
				errs = append(errs, err)
				continue
			}

			returnType := types.Void
			if methodDesc.Returns != "" {
				returnType, err = s.resolveTypeName(methodDesc.Returns)
				if err != nil {
					errs = append(errs, fmt.Errorf("%s.%s: %w", owner.Name(), methodDesc.Name, err))
					continue
				}
			}

			key := methodIndexKey(owner, static, methodDesc.Name, len(params))
			if _, ok := s.methods.Get(key); ok {
				errs = append(errs, fmt.Errorf("%s: duplicate method %s", owner.Name(), memberKey(methodDesc.Name, len(params))))
				continue
			}

			s.methods.Set(key, &Method{
				Owner:  owner,
				Name:   methodDesc.Name,
				Static: static,
				Params: params,
				Return: returnType,
			})
		}
	}

	indexMethods(class.Methods, false)
	indexMethods(class.StaticMethods, true)
	return
}

// inheritMethods copies the instance methods of supertypes into the index entries of their subtypes, builtin
// subtypes included, so that lookups stay exact-key queries. Overriding methods are kept.
func (s *Snapshot) inheritMethods() {
	depth := func(t *types.Type) int {
		d := 0
		for current := s.supers[t]; current != nil; current = s.supers[current] {
			d++
		}
		return d
	}

	//supertypes are processed before their subtypes.
	ordered := maps.Keys(s.supers)
	sort.Slice(ordered, func(i, j int) bool {
		di, dj := depth(ordered[i]), depth(ordered[j])
		if di != dj {
			return di < dj
		}
		return ordered[i].Name() < ordered[j].Name()
	})

	for _, t := range ordered {
		super := s.supers[t]
		if super == nil {
			continue
		}

		var inherited []*Method
		s.methods.Ascend(super.Name()+".", func(key string, method *Method) bool {
			if !strings.HasPrefix(key, super.Name()+".") {
				return false
			}
			inherited = append(inherited, method)
			return true
		})

		for _, method := range inherited {
			key := methodIndexKey(t, false, method.Name, method.Arity())
			if _, ok := s.methods.Get(key); !ok {
				s.methods.Set(key, method)
			}
		}
	}
}

func (s *Snapshot) Version() *semver.Version {
	return s.version
}

// LookupType returns the type named name, builtin types are always found.
func (s *Snapshot) LookupType(name string) (*types.Type, bool) {
	t, ok := s.types[name]
	return t, ok
}

// LookupConstructor returns the whitelisted constructor of t with exactly arity parameters, or nil.
func (s *Snapshot) LookupConstructor(t *types.Type, arity int) *Constructor {
	if t == nil {
		return nil
	}
	ctor, _ := s.constructors.Get(constructorIndexKey(t, arity))
	return ctor
}

// LookupMethod returns the whitelisted method of t with exactly arity parameters, or nil.
func (s *Snapshot) LookupMethod(t *types.Type, static bool, name string, arity int) *Method {
	if t == nil {
		return nil
	}
	method, _ := s.methods.Get(methodIndexKey(t, static, name, arity))
	return method
}

// Super returns the direct supertype of a reference type, or nil.
func (s *Snapshot) Super(t *types.Type) *types.Type {
	return s.supers[t]
}

// IsAssignable reports whether a value of the reference type from can be used where to is expected
// without a cast.
func (s *Snapshot) IsAssignable(from, to *types.Type) bool {
	if !from.IsReference() || !to.IsReference() {
		return false
	}
	for current := from; current != nil; current = s.supers[current] {
		if current == to {
			return true
		}
	}
	return false
}

// TypeNames returns the names of all types visible to scripts, in natural order.
func (s *Snapshot) TypeNames() []string {
	names := maps.Keys(s.types)
	sort.Sort(natural.StringSlice(names))
	return names
}

// Members returns the signatures of the members reachable on t (inherited methods included), in natural order.
func (s *Snapshot) Members(t *types.Type) []string {
	var members []string

	s.constructors.Ascend(t.Name()+"#", func(key string, ctor *Constructor) bool {
		if !strings.HasPrefix(key, t.Name()+"#") {
			return false
		}
		members = append(members, t.Name()+"("+joinTypeNames(ctor.Params)+")")
		return true
	})

	var methods []string
	for _, sep := range []string{".", "::"} {
		prefix := t.Name() + sep
		s.methods.Ascend(prefix, func(key string, method *Method) bool {
			if !strings.HasPrefix(key, prefix) {
				return false
			}
			methods = append(methods, method.Signature())
			return true
		})
	}

	sort.Sort(natural.StringSlice(methods))
	return append(members, methods...)
}

// SuggestType returns the name of the visible type closest to name, or an empty string.
func (s *Snapshot) SuggestType(name string) string {
	closest, _, ok := utils.FindClosestString(context.Background(), s.TypeNames(), name, MAX_SUGGESTION_DIFF)
	if !ok {
		return ""
	}
	return closest
}

// SuggestMethod returns the name/arity key of the method of t closest to name/arity, or an empty string.
func (s *Snapshot) SuggestMethod(t *types.Type, static bool, name string, arity int) string {
	prefix := t.Name() + "."
	if static {
		prefix = t.Name() + "::"
	}

	var candidates []string
	s.methods.Ascend(prefix, func(key string, method *Method) bool {
		if !strings.HasPrefix(key, prefix) {
			return false
		}
		candidates = append(candidates, method.Key())
		return true
	})

	closest, _, ok := utils.FindClosestString(context.Background(), candidates, memberKey(name, arity), MAX_SUGGESTION_DIFF)
	if !ok {
		return ""
	}
	return closest
}

func joinTypeNames(list []*types.Type) string {
	return strings.Join(utils.MapSlice(list, (*types.Type).Name), ", ")
}
