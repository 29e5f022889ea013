package components

import twmerge "github.com/Oudwins/tailwind-merge-go"

const inputBase = "mt-1 block w-full rounded-md border border-gray-300 px-3 py-2 text-sm focus:border-indigo-500 focus:outline-none"

var variantClasses = map[Variant]string{
	VariantSuccess: "border-green-500 bg-green-50 text-green-900",
	VariantError:   "border-red-500 bg-red-50 text-red-900",
	VariantWarning: "border-yellow-500 bg-yellow-50 text-yellow-900",
	VariantInfo:    "border-blue-500 bg-blue-50 text-blue-900",
}

func toastClass(p ToastProps) string {
	v, ok := variantClasses[p.Variant]
	if !ok {
		v = variantClasses[VariantSuccess]
	}
	return twmerge.Merge("fixed bottom-4 right-4 z-50 w-80 rounded-lg border p-4 shadow-lg", v, p.Class)
}

func inputType(f FieldSpec) string {
	if f.Type == "" {
		return "text"
	}
	return f.Type
}

func inputClass(f FieldSpec) string {
	class := inputBase
	if f.Type == "color" {
		class = twmerge.Merge(inputBase, "h-10 p-1")
	}
	return twmerge.Merge(class, f.Class)
}
