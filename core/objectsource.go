/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package core

// ObjectSource resolves indirect references to the PdfObject they point at.
// A Document (see the model package) supplies one, backed by whatever
// lexical/cross-reference machinery parsed the file; core itself has no
// parser and never constructs an ObjectSource on its own.
type ObjectSource interface {
	// Resolve looks up the object referred to by ref. Implementations should
	// return a MakeNull() object (not an error) for references that point at
	// nothing, matching how the PDF spec treats dangling references.
	Resolve(ref *PdfObjectReference) (PdfObject, error)
}
