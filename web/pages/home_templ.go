// Code generated by templ - DO NOT EDIT.

// templ: version: v0.2.793
package pages

//lint:file-ignore SA4006 This context is only used if a nested component is present.

import "github.com/a-h/templ"
import templruntime "github.com/a-h/templ/runtime"

import "github.com/cristianadrielbraun/qrposter/web/components"

// HomePage renders the poster form.
func HomePage(p HomeProps) templ.Component {
	return templruntime.GeneratedTemplate(func(templ_7745c5c3_Input templruntime.GeneratedComponentInput) (templ_7745c5c3_Err error) {
		templ_7745c5c3_W, ctx := templ_7745c5c3_Input.Writer, templ_7745c5c3_Input.Context
		if templ_7745c5c3_CtxErr := ctx.Err(); templ_7745c5c3_CtxErr != nil {
			return templ_7745c5c3_CtxErr
		}
		templ_7745c5c3_Buffer, templ_7745c5c3_IsBuffer := templruntime.GetBuffer(templ_7745c5c3_W)
		if !templ_7745c5c3_IsBuffer {
			defer func() {
				templ_7745c5c3_BufErr := templruntime.ReleaseBuffer(templ_7745c5c3_Buffer)
				if templ_7745c5c3_Err == nil {
					templ_7745c5c3_Err = templ_7745c5c3_BufErr
				}
			}()
		}
		ctx = templ.InitializeContext(ctx)
		templ_7745c5c3_Var1 := templ.GetChildren(ctx)
		if templ_7745c5c3_Var1 == nil {
			templ_7745c5c3_Var1 = templ.NopComponent
		}
		ctx = templ.ClearChildren(ctx)
		_, templ_7745c5c3_Err = templ_7745c5c3_Buffer.WriteString("<!doctype html><html lang=\"en\"><head><meta charset=\"utf-8\"><meta name=\"viewport\" content=\"width=device-width, initial-scale=1\"><title>UPI QR Poster</title><script src=\"https://cdn.tailwindcss.com\"></script></head><body class=\"min-h-screen bg-gray-50\"><main class=\"mx-auto max-w-xl px-4 py-10\"><h1 class=\"mb-2 text-3xl font-bold text-gray-900\">UPI payment poster</h1><p class=\"mb-8 text-gray-600\">Print-ready A4 poster with a branded, scannable payment QR code.</p><form id=\"poster-form\" class=\"rounded-lg bg-white p-6 shadow\" enctype=\"multipart/form-data\">")
		if templ_7745c5c3_Err != nil {
			return templ_7745c5c3_Err
		}
		for _, f := range formFields(p) {
			templ_7745c5c3_Err = components.Field(f).Render(ctx, templ_7745c5c3_Buffer)
			if templ_7745c5c3_Err != nil {
				return templ_7745c5c3_Err
			}
		}
		_, templ_7745c5c3_Err = templ_7745c5c3_Buffer.WriteString("<button type=\"submit\" class=\"w-full rounded-md bg-indigo-600 px-4 py-2 font-semibold text-white hover:bg-indigo-700\">Generate poster</button></form><div id=\"toasts\"></div></main><script>\n\t\t\t\tconst form = document.getElementById('poster-form');\n\t\t\t\tasync function toast(title, description, variant) {\n\t\t\t\t\tconst body = new URLSearchParams({title, description, variant, dismissible: 'on'});\n\t\t\t\t\tconst res = await fetch('/api/htmx/toast', {method: 'POST', body});\n\t\t\t\t\tdocument.getElementById('toasts').innerHTML = await res.text();\n\t\t\t\t}\n\t\t\t\tform.addEventListener('submit', async (e) => {\n\t\t\t\t\te.preventDefault();\n\t\t\t\t\tconst res = await fetch('/api/poster', {method: 'POST', body: new FormData(form)});\n\t\t\t\t\tif (!res.ok) {\n\t\t\t\t\t\tconst err = await res.json().catch(() => ({error: res.statusText}));\n\t\t\t\t\t\treturn toast('Generation failed', err.error, 'error');\n\t\t\t\t\t}\n\t\t\t\t\tconst name = (res.headers.get('Content-Disposition') || '').split('filename=')[1] || 'poster.pdf';\n\t\t\t\t\tconst url = URL.createObjectURL(await res.blob());\n\t\t\t\t\tconst a = Object.assign(document.createElement('a'), {href: url, download: name.replaceAll('\"', '')});\n\t\t\t\t\ta.click();\n\t\t\t\t\tURL.revokeObjectURL(url);\n\t\t\t\t\ttoast('Poster ready', 'Generated in ' + res.headers.get('X-Generation-Time'), 'success');\n\t\t\t\t});\n\t\t\t</script></body></html>")
		if templ_7745c5c3_Err != nil {
			return templ_7745c5c3_Err
		}
		return templ_7745c5c3_Err
	})
}

var _ = templruntime.GeneratedTemplate
