package interpreter

import "testing"

func TestSharedValuePrototype(t *testing.T) {
	expectOut(t, "println(1.type())\nprintln(true.str())\nprintln(Null.type())\n", "Num\ntrue\nNull\n")
}

func TestNumPrototype(t *testing.T) {
	src := `println(2.5.round())
println(2.4.round())
println(2.5.floor())
println(2.1.ceil())
println((-3).abs())
println(9.sqrt())
`
	expectOut(t, src, "3\n2\n2\n3\n3\n3\n")
}

func TestStrPrototype(t *testing.T) {
	src := `var s = " Hello "
println(s.trim())
println(s.trim().upper())
println(s.trim().lower())
println("a,b,c".split(",").len())
println("hello".contains("ell"))
println("hello".replace("l", "L"))
println("abc".len())
println("12.5".parse_num())
println("zz".parse_num() ?? "not a num")
println("abc".chars()[1])
`
	expectOut(t, src, "Hello\nHELLO\nhello\n3\ntrue\nheLLo\n3\n12.5\nnot a num\nb\n")
}

func TestListPrototype(t *testing.T) {
	src := `var l = [3, 1, 2]
l.push(4)
println(l.len())
println(l.pop())
l.sort()
println(l.join("-"))
l.reverse()
println(l.join("-"))
l.insert(1, 9)
println(l.join("-"))
println(l.remove(1))
println(l.index_of(3))
println(l.index_of(42) ?? "absent")
println(l.contains(2))
`
	expectOut(t, src, "4\n4\n1-2-3\n3-2-1\n3-9-2-1\n9\n0\nabsent\ntrue\n")
}

func TestDictPrototype(t *testing.T) {
	src := `var d = {"a": 1, "b": 2}
println(d.len())
println(d.keys().join(","))
println(d.values().join(","))
println(d.has("a"))
println(d.has("z"))
println(d.remove("a"))
println(d.len())
`
	expectOut(t, src, "2\na,b\n1,2\ntrue\nfalse\ntrue\n1\n")
}

func TestBoolPrototype(t *testing.T) {
	expectOut(t, "println(true.as_num())\nprintln(false.as_num())\n", "1\n0\n")
}

func TestPrototypeMissIsNameErr(t *testing.T) {
	err := runtimeErr(t, "1.shout()\n")
	if err.Kind != "NameErr" {
		t.Fatalf("kind = %s, want NameErr", err.Kind)
	}
}

func TestPrototypeArityChecked(t *testing.T) {
	err := runtimeErr(t, "\"a\".upper(1)\n")
	if err.Kind != "ArityErr" {
		t.Fatalf("kind = %s, want ArityErr", err.Kind)
	}
}

func TestMathNamespace(t *testing.T) {
	src := `println(Math.pow(2, 10))
println(Math.abs(-2))
println(Math.floor(2.9))
println(Math.max(1, 5))
`
	expectOut(t, src, "1024\n2\n2\n5\n")
}

func TestRandSeedIsDeterministic(t *testing.T) {
	src := `Rand.seed(42)
var a = Rand.num()
Rand.seed(42)
var b = Rand.num()
println(a == b)
println(a >= 0 and a < 1)
`
	expectOut(t, src, "true\ntrue\n")
}

func TestRandPickEmptyIsValueErr(t *testing.T) {
	err := runtimeErr(t, "Rand.pick([])\n")
	if err.Kind != "ValueErr" {
		t.Fatalf("kind = %s, want ValueErr", err.Kind)
	}
}
