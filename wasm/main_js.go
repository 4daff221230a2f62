//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/voxelsplace/voxkit/api"
	"github.com/voxelsplace/voxkit/vox"
)

func bytesArg(v js.Value) []byte {
	buf := make([]byte, v.Get("length").Int())
	js.CopyBytesToGo(buf, v)
	return buf
}

func toUint8Array(b []byte) js.Value {
	arr := js.Global().Get("Uint8Array").New(len(b))
	js.CopyBytesToJS(arr, b)
	return arr
}

// optsArg reads the optional zUp flag at position i.
func optsArg(args []js.Value, i int) vox.Options {
	opts := vox.DefaultOptions()
	if len(args) > i && args[i].Type() == js.TypeBoolean {
		opts.YUp = !args[i].Bool()
	}
	return opts
}

func vox2glb(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf("missing vox bytes")
	}
	out, err := api.VOXToGLB(bytesArg(args[0]), optsArg(args, 1))
	if err != nil {
		return js.ValueOf(err.Error())
	}
	return toUint8Array(out)
}

// vox2png(bytes, model, scale, zUp)
func vox2png(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf("missing vox bytes")
	}
	model, scale := 0, 8
	if len(args) > 1 && args[1].Type() == js.TypeNumber {
		model = args[1].Int()
	}
	if len(args) > 2 && args[2].Type() == js.TypeNumber {
		scale = args[2].Int()
	}
	out, err := api.VOXToPNG(bytesArg(args[0]), optsArg(args, 3), model, scale)
	if err != nil {
		return js.ValueOf(err.Error())
	}
	return toUint8Array(out)
}

func voxInfo(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf("missing vox bytes")
	}
	out, err := api.SummarizeBytes(bytesArg(args[0]), optsArg(args, 1))
	if err != nil {
		return js.ValueOf(err.Error())
	}
	return js.ValueOf(string(out))
}

// packVoxs(files, compression)
func packVoxs(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf("missing files object")
	}
	filesObj := args[0]
	files := map[string][]byte{}
	keys := js.Global().Get("Object").Call("keys", filesObj)
	for i := 0; i < keys.Length(); i++ {
		k := keys.Index(i).String()
		files[k] = bytesArg(filesObj.Get(k))
	}
	name := ""
	if len(args) > 1 && args[1].Type() == js.TypeString {
		name = args[1].String()
	}
	comp, err := vox.ParsePackCompression(name)
	if err != nil {
		return js.ValueOf(err.Error())
	}
	out, err := api.PackVOXs(files, comp)
	if err != nil {
		return js.ValueOf(err.Error())
	}
	return toUint8Array(out)
}

func unpackVoxpack(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf("missing pack bytes")
	}
	files, err := api.UnpackVOXPACKToMemory(bytesArg(args[0]))
	if err != nil {
		return js.ValueOf(err.Error())
	}
	// return an object mapping names->Uint8Array
	result := js.Global().Get("Object").New()
	for name, b := range files {
		result.Set(name, toUint8Array(b))
	}
	return result
}

func main() {
	js.Global().Set("vox2glb", js.FuncOf(vox2glb))
	js.Global().Set("vox2png", js.FuncOf(vox2png))
	js.Global().Set("voxInfo", js.FuncOf(voxInfo))
	js.Global().Set("packVoxs", js.FuncOf(packVoxs))
	js.Global().Set("unpackVoxpack", js.FuncOf(unpackVoxpack))
	select {}
}
