// Package apitoc builds the API table-of-contents sidebar of a rendered documentation page.
//
// Rendered pages mark every heading and API definition term with a "headerlink" anchor
// (the pilcrow permalink). Build walks those anchors in document order, classifies each by
// the element that holds it, derives a label and appends one link per anchor to the page's
// div.apitoc container:
//
//	h1                              -> <a href="#x">Title</a>
//	h2                              -> <a class="h2" href="#x">Title</a>
//	dt inside dl.method/dl.attribute -> <a class="partOfClass" href="#x">signature</a>
//	other dt                        -> <a class="second" href="#x">signature</a>
//
// Classification works on a plain Context record so it can be tested without a parsed tree.
// Nothing in this package returns an error: pages without anchors or without a container
// simply produce no entries.
package apitoc
