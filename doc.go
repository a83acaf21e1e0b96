/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

//
// pdfcore is a PDF rendering engine: it reads the object graph of a PDF
// document through an external ObjectSource and drives a Canvas-shaped
// renderer over its content streams. It does not create, edit, or sign PDF
// documents.
//

package pdfcore
