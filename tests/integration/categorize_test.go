//go:build integration
// +build integration

package integration

import (
	"net/http"
	"strings"
	"time"
)

// CategorizeTestSuite exercises the category store and the categorize flow together
type CategorizeTestSuite struct {
	IntegrationTestSuite
	createdIDs []string
}

func (suite *CategorizeTestSuite) TearDownSuite() {
	token := suite.adminToken()
	for _, id := range suite.createdIDs {
		suite.doJSON(http.MethodDelete, "/api/v1/categories/"+id, token, nil)
	}
}

func (suite *CategorizeTestSuite) createCategory(name string) string {
	resp, body := suite.doJSON(http.MethodPost, "/api/v1/categories", suite.adminToken(), map[string]string{"name": name})
	suite.Require().Equal(http.StatusCreated, resp.StatusCode)

	id := body["id"].(string)
	suite.createdIDs = append(suite.createdIDs, id)
	return id
}

func (suite *CategorizeTestSuite) TestCreateCategory_RequiresAdmin() {
	resp, _ := suite.doJSON(http.MethodPost, "/api/v1/categories", "", map[string]string{"name": "unauthorized"})
	suite.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (suite *CategorizeTestSuite) TestCategorize_EveryCategoryOnce() {
	name := "integration-" + time.Now().Format("150405.000")
	suite.createCategory(name)

	resp, body := suite.doJSON(http.MethodPost, "/categorize", "", map[string]interface{}{
		"text": "What is the derivative of x squared?",
		"topk": 3,
	})
	suite.Require().Equal(http.StatusOK, resp.StatusCode)

	_, listBody := suite.doJSON(http.MethodGet, "/api/v1/categories", "", nil)
	count := int(listBody["count"].(float64))

	predictions := body["predictions"].([]interface{})
	suite.Len(predictions, count)
	suite.Contains(body, "uncertain")

	seen := map[string]bool{}
	prev := 2.0
	for _, p := range predictions {
		pred := p.(map[string]interface{})
		label := strings.ToLower(pred["label"].(string))
		suite.False(seen[label], "duplicate label "+label)
		seen[label] = true

		score := pred["score"].(float64)
		suite.GreaterOrEqual(score, 0.0)
		suite.LessOrEqual(score, 1.0)
		suite.LessOrEqual(score, prev)
		prev = score
	}
	suite.True(seen[strings.ToLower(name)])
}

func (suite *CategorizeTestSuite) TestClassifyAlias() {
	resp, body := suite.doJSON(http.MethodPost, "/classify", "", map[string]interface{}{"content": "Kanji study tips"})

	suite.Equal(http.StatusOK, resp.StatusCode)
	suite.Contains(body, "predictions")
}

func (suite *CategorizeTestSuite) TestCategorize_BlankText() {
	resp, body := suite.doJSON(http.MethodPost, "/api/v1/categorize", "", map[string]interface{}{"text": "   "})

	suite.Equal(http.StatusBadRequest, resp.StatusCode)
	suite.Contains(body, "error")
}
