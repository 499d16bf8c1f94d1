// This file translates decoded HCL definitions into model elements.

package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/specialistvlad/sysmlgo/internal/ctxlog"
	"github.com/specialistvlad/sysmlgo/internal/sysml"
)

type builder struct {
	ctx           context.Context
	model         *sysml.Model
	references    []pendingReference
	relationships []pendingRelationship
}

// pendingReference and pendingRelationship are resolved after every file is
// built.
type pendingReference struct {
	owner *sysml.Block
	def   *ReferenceDefinition
}

type pendingRelationship struct {
	pkg *sysml.Package
	def *RelationshipDefinition
}

// contents adds everything declared in def to pkg. Package-level elements
// are keyed by their label unless `key` overrides it.
func (b *builder) contents(pkg *sysml.Package, def *PackageDefinition) error {
	for _, p := range def.Packages {
		sub, err := b.model.NewPackage(p.Name)
		if err != nil {
			return err
		}
		if err := pkg.AddAs(keyOr(p.Key, p.Name), sub); err != nil {
			return err
		}
		if err := b.contents(sub, p); err != nil {
			return fmt.Errorf("package %q: %w", p.Name, err)
		}
	}

	for _, d := range def.Blocks {
		blk, err := b.block(d)
		if err != nil {
			return err
		}
		if err := pkg.AddAs(keyOr(d.Key, d.Name), blk); err != nil {
			return err
		}
	}

	for _, d := range def.Requirements {
		var opts []sysml.RequirementOption
		if d.ID != "" {
			opts = append(opts, sysml.WithIdentifier(d.ID))
		}
		r, err := b.model.NewRequirement(d.Name, d.Text, opts...)
		if err != nil {
			return err
		}
		if err := pkg.AddAs(keyOr(d.Key, d.Name), r); err != nil {
			return err
		}
	}

	for _, d := range def.Constraints {
		c, err := b.model.NewConstraintBlock(d.Name, d.Expression)
		if err != nil {
			return err
		}
		if err := pkg.AddAs(keyOr(d.Key, d.Name), c); err != nil {
			return err
		}
	}

	for _, d := range def.Relationships {
		b.relationships = append(b.relationships, pendingRelationship{pkg: pkg, def: d})
	}
	return nil
}

// block builds a block and everything nested in it. Nested elements are
// keyed by their normalized name unless `key` overrides it.
func (b *builder) block(def *BlockDefinition) (*sysml.Block, error) {
	logger := ctxlog.FromContext(b.ctx).With("block", def.Name)
	ctx := ctxlog.WithLogger(b.ctx, logger)

	multiplicity, err := evalMultiplicity(ctx, def.Multiplicity)
	if err != nil {
		return nil, fmt.Errorf("block %q: %w", def.Name, err)
	}
	blk, err := b.model.NewBlock(def.Name, sysml.WithMultiplicity(multiplicity))
	if err != nil {
		return nil, fmt.Errorf("block %q: %w", def.Name, err)
	}

	for _, d := range def.Parts {
		part, err := b.block(d)
		if err != nil {
			return nil, err
		}
		if err := blk.AddPart(d.Key, part); err != nil {
			return nil, err
		}
	}

	for _, d := range def.FlowPorts {
		port, err := b.block(d)
		if err != nil {
			return nil, err
		}
		if err := blk.AddFlowPort(d.Key, port); err != nil {
			return nil, err
		}
	}

	for _, d := range def.Values {
		magnitude, err := evalMagnitude(ctx, d.Magnitude)
		if err != nil {
			return nil, fmt.Errorf("value %q of block %q: %w", d.Name, def.Name, err)
		}
		v, err := b.model.NewValueType(d.Name, magnitude, d.Unit)
		if err != nil {
			return nil, fmt.Errorf("value %q of block %q: %w", d.Name, def.Name, err)
		}
		if err := blk.AddValue(d.Key, v); err != nil {
			return nil, err
		}
	}

	for _, d := range def.Constraints {
		c, err := b.model.NewConstraintBlock(d.Name, d.Expression)
		if err != nil {
			return nil, err
		}
		if err := blk.AddConstraint(d.Key, c); err != nil {
			return nil, err
		}
	}

	for _, d := range def.References {
		b.references = append(b.references, pendingReference{owner: blk, def: d})
	}

	logger.Debug("Translated HCL block.", "multiplicity", multiplicity, "parts", blk.Parts().Len())
	return blk, nil
}

// resolve binds references and creates relationships now that every element
// exists.
func (b *builder) resolve() error {
	for _, ref := range b.references {
		target, err := b.model.Resolve(ref.def.Target)
		if err != nil {
			return fmt.Errorf("reference %q of block %q: %w", ref.def.Key, ref.owner.Name(), err)
		}
		if err := ref.owner.AddReference(ref.def.Key, target); err != nil {
			return err
		}
	}

	for _, rel := range b.relationships {
		def := rel.def
		kind, err := sysml.ParseKind(def.Kind)
		if err != nil {
			return fmt.Errorf("relationship %q: %w", def.Kind, err)
		}
		if !kind.IsDependency() {
			return fmt.Errorf("%w: %q is not a relationship kind", sysml.ErrInvalidArgumentType, def.Kind)
		}
		client, err := b.model.Resolve(def.Client)
		if err != nil {
			return fmt.Errorf("%s client: %w", kind, err)
		}
		supplier, err := b.model.Resolve(def.Supplier)
		if err != nil {
			return fmt.Errorf("%s supplier: %w", kind, err)
		}

		var opts []sysml.DependencyOption
		if def.Name != "" {
			opts = append(opts, sysml.Named(def.Name))
		}
		if _, err := rel.pkg.CreateDependency(kind, client, supplier, opts...); err != nil {
			return fmt.Errorf("%s %s -> %s: %w", kind, def.Client, def.Supplier, err)
		}
	}
	return nil
}
