package interpreter

import "testing"

func TestWhileWithHeaderAndStep(t *testing.T) {
	src := `var i = 0 while i < 3 step i++ do
println(i)
end
`
	expectOut(t, src, "0\n1\n2\n")
}

func TestWhileHeaderScopedToLoop(t *testing.T) {
	src := `var i = 0 while i < 1 step i++ do
end
println(i)
`
	err := runtimeErr(t, src)
	if err.Kind != "NameErr" {
		t.Fatalf("loop header must not leak, got %v", err)
	}
}

func TestWhileBreak(t *testing.T) {
	src := `var i = 0 while true step i++ do
if i == 2 do
break
end
println(i)
end
`
	expectOut(t, src, "0\n1\n")
}

func TestWhileContinueRunsStep(t *testing.T) {
	src := `var i = 0 while i < 5 step i++ do
if i == 2 do
continue
end
println(i)
end
`
	expectOut(t, src, "0\n1\n3\n4\n")
}

func TestForOverString(t *testing.T) {
	src := `for ch, idx in "abc" do
print(ch)
print(idx)
end
println("")
`
	expectOut(t, src, "a0b1c2\n")
}

func TestForBreakAndContinue(t *testing.T) {
	src := `for v in [1, 2, 3, 4, 5] do
if v == 2 do
continue
end
if v == 4 do
break
end
println(v)
end
`
	expectOut(t, src, "1\n3\n")
}

func TestForRequiresIterable(t *testing.T) {
	err := runtimeErr(t, "for v in 5 do\nend\n")
	if err.Kind != "TypeErr" {
		t.Fatalf("kind = %s, want TypeErr", err.Kind)
	}
}

func TestForBindsFreshFramePerIteration(t *testing.T) {
	src := `var fns = []
for v in [1, 2, 3] do
fn get() do
return v
end
fns.push(get)
end
println(fns[0]())
println(fns[2]())
`
	expectOut(t, src, "1\n3\n")
}

func TestNestedLoopsBreakInnerOnly(t *testing.T) {
	src := `for a in [1, 2] do
for b in [1, 2, 3] do
if b == 2 do
break
end
println(b)
end
println(a)
end
`
	expectOut(t, src, "1\n1\n1\n2\n")
}

func TestMatchFirstArmWins(t *testing.T) {
	src := `var x = 2
match x do
1 println("one")
2 println("two")
2 println("again")
else println("other")
end
`
	expectOut(t, src, "two\n")
}

func TestMatchElse(t *testing.T) {
	src := `match "q" do
"a" println("a")
else println("fallback")
end
`
	expectOut(t, src, "fallback\n")
}

func TestMatchNoArmNoElseIsNoop(t *testing.T) {
	src := `match 9 do
1 println("one")
end
println("after")
`
	expectOut(t, src, "after\n")
}

func TestMatchDiscriminantEvaluatedOnce(t *testing.T) {
	src := `var count = 0
fn get() do
count = count + 1
return 3
end
match get() do
1 println("one")
2 println("two")
3 println("three")
end
println(count)
`
	expectOut(t, src, "three\n1\n")
}

func TestMatchOnStrings(t *testing.T) {
	src := `match "b" do
"a" println(1)
"b" println(2)
end
`
	expectOut(t, src, "2\n")
}

func TestReturnUnwindsLoops(t *testing.T) {
	src := `fn find(items, want) do
for v, i in items do
if v == want do
return i
end
end
return Null
end
println(find([5, 6, 7], 6))
println(find([5], 9) ?? "missing")
`
	expectOut(t, src, "1\nmissing\n")
}
