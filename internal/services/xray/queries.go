package xray

// GraphQL documents for the Xray operations this client consumes. Variable
// shapes follow the Xray cloud GraphQL schema.

const queryGetTest = `
query GetTest($issueId: String) {
  getTest(issueId: $issueId) {
    issueId
    testType { name }
    jira(fields: ["id", "key", "summary", "status"])
    steps {
      id
      action
      data
      result
    }
  }
}`

const queryGetTests = `
query GetTests($jql: String, $limit: Int!) {
  getTests(jql: $jql, limit: $limit) {
    total
    results {
      issueId
      testType { name }
      jira(fields: ["id", "key", "summary", "status"])
    }
  }
}`

const queryGetTestRuns = `
query GetTestRuns($testIssueIds: [String], $limit: Int!) {
  getTestRuns(testIssueIds: $testIssueIds, limit: $limit) {
    total
    results {
      id
      status { name }
      startedOn
      finishedOn
      test {
        issueId
        jira(fields: ["id", "key", "summary", "status"])
      }
    }
  }
}`

const mutationCreatePrecondition = `
mutation CreatePrecondition($definition: String!, $summary: String!, $project: String!) {
  createPrecondition(
    preconditionType: { name: "Generic" }
    definition: $definition
    jira: { fields: { summary: $summary, project: { key: $project } } }
  ) {
    precondition {
      issueId
      jira(fields: ["key"])
    }
    warnings
  }
}`

const mutationCreateTest = `
mutation CreateTest($summary: String!, $description: String!, $project: String!, $steps: [CreateStepInput], $preconditionIssueIds: [String]) {
  createTest(
    testType: { name: "Manual" }
    steps: $steps
    preconditionIssueIds: $preconditionIssueIds
    jira: { fields: { summary: $summary, description: $description, project: { key: $project } } }
  ) {
    test {
      issueId
      jira(fields: ["id", "key", "summary", "status"])
    }
    warnings
  }
}`

const mutationAddTestStep = `
mutation AddTestStep($issueId: String!, $action: String!, $data: String, $result: String) {
  addTestStep(issueId: $issueId, step: { action: $action, data: $data, result: $result }) {
    id
    action
  }
}`

const mutationAddTestPrecondition = `
mutation AddTestPrecondition($issueId: String!, $preconditionIssueIds: [String]!) {
  addPreconditionsToTest(issueId: $issueId, preconditionIssueIds: $preconditionIssueIds) {
    addedPreconditions
    warning
  }
}`
