package envsubst_test

import (
	"testing"

	"github.com/jasonopslevel/opslevel-plugin-jenkins/pkg/utils/envsubst"
	"github.com/m-mizutani/gt"
)

func TestExpand(t *testing.T) {
	vars := map[string]string{
		"BUILD_NUMBER": "42",
		"JOB_NAME":     "deploy-prod",
		"EMPTY":        "",
	}

	cases := map[string]struct {
		input string
		want  string
	}{
		"no placeholder":     {"plain text", "plain text"},
		"single placeholder": {"Jenkins Deploy #${BUILD_NUMBER}", "Jenkins Deploy #42"},
		"multiple keys":      {"${JOB_NAME} build ${BUILD_NUMBER}", "deploy-prod build 42"},
		"repeated key":       {"${BUILD_NUMBER}-${BUILD_NUMBER}", "42-42"},
		"unknown key":        {"run by ${BUILD_USER}", "run by ${BUILD_USER}"},
		"known and unknown":  {"${JOB_NAME} by ${BUILD_USER}", "deploy-prod by ${BUILD_USER}"},
		"empty value":        {"[${EMPTY}]", "[]"},
		"no braces":          {"cost $BUILD_NUMBER", "cost $BUILD_NUMBER"},
		"bare dollar":        {"ab$", "ab$"},
		"unterminated":       {"x ${BUILD_NUMBER", "x ${BUILD_NUMBER"},
		"empty name":         {"${}", "${}"},
		"empty input":        {"", ""},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			gt.Value(t, envsubst.Expand(tc.input, vars)).Equal(tc.want)
		})
	}
}

func TestExpandNoRecursion(t *testing.T) {
	vars := map[string]string{
		"OUTER": "${INNER}",
		"INNER": "should not appear",
	}
	gt.Value(t, envsubst.Expand("${OUTER}", vars)).Equal("${INNER}")
}

func TestExpandPtr(t *testing.T) {
	vars := map[string]string{"ENV": "Production"}

	t.Run("nil stays nil", func(t *testing.T) {
		gt.Value(t, envsubst.ExpandPtr(nil, vars)).Nil()
	})

	t.Run("empty stays empty but set", func(t *testing.T) {
		s := ""
		got := envsubst.ExpandPtr(&s, vars)
		gt.V(t, got).NotNil()
		gt.Value(t, *got).Equal("")
	})

	t.Run("expands value", func(t *testing.T) {
		s := "env=${ENV}"
		got := envsubst.ExpandPtr(&s, vars)
		gt.V(t, got).NotNil()
		gt.Value(t, *got).Equal("env=Production")
	})
}
