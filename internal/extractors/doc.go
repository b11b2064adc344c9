// Package extractors converts uploaded files into plain text.
// Each format has its own subpackage implementing driven.Extractor;
// the registry selects one by file extension.
package extractors
