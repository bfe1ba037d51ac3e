package cgen

// preamble is the fixed runtime every translation unit starts with: the
// operator macros backing the primitive methods and the I/O helpers.
const preamble = `#include <stdlib.h>
#include <stdio.h>
#include <math.h>
#include <stdint.h>

#define _id(v) (v)
#define _add(a, b) ((a) + (b))
#define _sub(a, b) ((a) - (b))
#define _mul(a, b) ((a) * (b))
#define _div(a, b) ((a) / (b))
#define _neg(a) (-(a))
#define _lt(a, b) ((a) < (b))
#define _gt(a, b) ((a) > (b))
#define _le(a, b) ((a) <= (b))
#define _ge(a, b) ((a) >= (b))
#define _eq(a, b) ((a) == (b))
#define _ne(a, b) ((a) != (b))
#define _and(a, b) ((a) && (b))
#define _or(a, b) ((a) || (b))
#define _not(a) (!(a))
#define _assign(p, v) ((*(p)) = (v), (p))
#define _zeroInt() 0
#define _zeroDbl() 0.0
#define _zeroBool() 0
#define _intToDbl(v) ((double)(v))
#define _dblToInt(v) ((int32_t)(v))

static void _assert(int32_t cond) {
    if (!cond) {
        fprintf(stderr, "assertion failed\n");
        exit(1);
    }
}

static int32_t _powInt(int32_t base, int32_t exp) {
    int32_t r = 1;
    while (exp > 0) {
        if (exp & 1) {
            r *= base;
        }
        base *= base;
        exp >>= 1;
    }
    return r;
}

static double _powDbl(double base, double exp) {
    return pow(base, exp);
}

static void _writeInt(int32_t v) { printf("%d", (int)v); }
static void _writeIntLn(int32_t v) { printf("%d\n", (int)v); }
static void _writeDbl(double v) { printf("%g", v); }
static void _writeDblLn(double v) { printf("%g\n", v); }
static void _writeBool(int32_t v) { printf("%s", v ? "true" : "false"); }
static void _writeBoolLn(int32_t v) { printf("%s\n", v ? "true" : "false"); }

static int32_t _readInt(void) {
    int v = 0;
    if (scanf("%d", &v) != 1) {
        v = 0;
    }
    return (int32_t)v;
}

static double _readDouble(void) {
    double v = 0;
    if (scanf("%lf", &v) != 1) {
        v = 0;
    }
    return v;
}

`
