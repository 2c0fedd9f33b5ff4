// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package templates

// StyleSheetName - path of the style sheet referenced by every page
const StyleSheetName = "mystyle.css"

// StyleSheet - the single style asset
const StyleSheet = `body {
  font-family: Verdana, Arial, sans-serif;
  font-size: 13px;
  color: #222;
  background: #fafafa;
  margin: 20px;
}
a { color: #1a4f8b; text-decoration: none; }
a:hover { text-decoration: underline; }
h3 { color: #333; }

.form-wrapper {
  width: 560px;
  margin: 10px auto 30px auto;
  padding: 8px;
  background: #eee;
  border-radius: 6px;
}
.form-wrapper input[type=text] {
  width: 430px;
  height: 22px;
  padding: 4px 8px;
  border: 1px solid #bbb;
  border-radius: 3px;
}
.form-wrapper input[type=submit] {
  height: 32px;
  padding: 0 14px;
  color: #fff;
  background: #1a4f8b;
  border: 0;
  border-radius: 3px;
  cursor: pointer;
}

table {
  border-collapse: collapse;
  margin: 0 auto;
}
th {
  background: #1a4f8b;
  color: #fff;
  padding: 5px 8px;
  text-align: left;
}
td {
  padding: 4px 8px;
  border-bottom: 1px solid #ddd;
  word-break: break-all;
}
tr.even { background: #eef2f7; }

.panel-row {
  text-align: center;
  margin: 10px auto;
}
.panel {
  display: inline-block;
  width: 170px;
  margin: 4px;
  padding: 10px;
  background: #fff;
  border: 1px solid #ccc;
  border-radius: 6px;
}
.panel-value { font-size: 20px; color: #1a4f8b; }
.panel-label { font-size: 11px; color: #666; }

.rectangle-speech-border {
  position: relative;
  width: 640px;
  margin: 14px auto;
  padding: 10px 14px;
  background: #fff;
  border: 2px solid #1a4f8b;
  border-radius: 8px;
}
.msg-header { font-size: 11px; color: #666; }
.msg-body { margin-top: 6px; white-space: pre-wrap; }
.notice { color: #8b1a1a; font-weight: bold; }
`
