// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package templates

// page title prefixes
const (
	ExplorerTitle = "Scash Block Explorer"
	VaultTitle    = "Scash Vault"
)

type head struct {
	Base        string
	Title       string
	Refresh     bool
	Target      string
	Placeholder string
}

// Head - start of an explorer page up to the search form
func Head(title string, refresh bool) string {
	return render("head", head{
		Base:        ExplorerTitle,
		Title:       title,
		Refresh:     refresh,
		Target:      "search",
		Placeholder: "Search address, block, transaction, tag...",
	})
}

// VaultHead - start of a vault page, the search form queries documents
func VaultHead(title string) string {
	return render("head", head{
		Base:        VaultTitle,
		Title:       title,
		Target:      "doc",
		Placeholder: "Search document name, document hash, author...",
	})
}

// Tail - end of every page
func Tail() string {
	return tailText
}

const tailText = "<p><br><br><i>Copyright &copy; 2017-2018 by Scash developers.</i></p></body></html>\n"

const headTemplate = `{{define "head"}}<html><head><title>{{.Base}}{{if .Title}} - {{safe .Title}}{{end}}</title>
<link REL="StyleSheet" TYPE="text/css" HREF="` + StyleSheetName + `">
<script>function nav(){window.location.href="{{.Target}}?q="+encodeURIComponent(document.getElementById('q').value);return false;}</script>
{{if .Refresh}}<meta http-equiv="refresh" content="10" />
{{end}}<meta charset="UTF-8">
</head><body>
<form class="form-wrapper" onSubmit="return nav();"><input type="text" id="q" placeholder="{{.Placeholder}}" required> <input type="submit" value="Search"></form>
{{end}}`
