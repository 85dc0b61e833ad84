// Package template assembles welcome emails from ordered content blocks.
//
// An email is described by a slice of [Block] values plus substitution
// [Variables]. The [Assembler] sorts blocks by their Order field (stable,
// so ties keep insertion order), renders each block through a closed set
// of templ components, and wraps the result in a fixed document shell.
// Blocks of an unknown kind render a visible placeholder instead of
// failing the whole document.
//
// Assembly is pure: identical blocks and variables always produce
// byte-identical HTML, which makes the output safe to cache.
//
// Basic usage:
//
//	a := template.New(
//	    template.WithButton("https://example.com/dashboard", "Open dashboard"),
//	)
//	out, err := a.Assemble(ctx, template.DefaultBlocks(), template.Variables{
//	    Username: "Ada",
//	    Message:  "Glad to have you here.",
//	})
//
// Editing sessions use [Composition] to add, remove and reorder blocks
// before handing the result to the assembler:
//
//	c := template.NewComposition(nil)
//	c.Add(template.KindWelcomeHeader, "")
//	c.Add(template.KindMarkdown, "[!button|Get started](https://example.com)")
//	out, err := a.Assemble(ctx, c.Blocks(), vars)
//
// Designs exported by the visual editor are decoded with [FromDesign].
package template
