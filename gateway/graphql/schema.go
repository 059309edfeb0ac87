package graphql

// Schema is the SDL for the portal GraphQL API. Field resolution semantics
// live in the resolver types; the schema only fixes the shape.
const Schema = `
scalar JSON

type Query {
	info: String!
	item(id: ID!): Item
	searchItems(query: String!): [Item!]!
	user(username: String!): User
	searchUsers(query: String!): [User!]!
	group(id: ID!): Group
	searchGroups(query: String!): [Group!]!
	surveys(type: String, groups: [String!], q: String): [Survey!]!
	survey(id: ID!): Survey
	dataset(id: String!, join: DatasetJoin): Dataset
	quickToken: String
}

input DatasetJoin {
	datasetId: String!
	joinField: String!
	targetField: String!
}

type Item {
	id: String
	ownerUsername: String!
	owner: User
	title: String!
	type: String!
	description: String
	snippet: String
	tags: [String!]!
	typeKeywords: [String!]!
	properties: JSON!
	created: Float
	modified: Float
	createdISO: String
	modifiedISO: String
	groups: [Group!]!
	teams: [Group!]!
}

type User {
	id: ID!
	username: String!
	firstName: String!
	lastName: String!
	fullName: String
	description: String
	email: String!
	orgId: String
	role: String
	privileges: [String!]!
	access: String!
	lastLogin: Float
	created: Float
	modified: Float
	thumbnail: String
	tags: [String!]!
	groups: [Group!]!
}

type Group {
	id: ID!
	title: String!
	ownerUsername: String!
	owner: User
	description: String
	snippet: String
	tags: [String!]!
	created: Float
	modified: Float
	createdISO: String
	modifiedISO: String
	thumbnail: String
	thumbnailUrl: String!
	userMembership: GroupMembership
}

type GroupMembership {
	username: String!
	memberType: String!
}

type Survey {
	id: ID!
	title: String!
	description: String
	snippet: String
	type: String
	typeKeywords: [String!]!
	ownerUsername: String!
	owner: User
	thumbnail: String
	created: Float
	modified: Float
	createdISO: String
	modifiedISO: String
	access: String
	formInfo: FormInfo
	service: FeatureService
}

type FormInfo {
	status: String
	schedule: SurveySchedule!
}

type SurveySchedule {
	start: String
	end: String
}

type FeatureService {
	id: ID!
	title: String
	url: String
	layers: [Layer!]!
}

type Layer {
	id: Int!
	name: String
	url: String!
	totalRecords: Int!
	lastEntry: String!
}

type Dataset {
	id: String!
	name: String
	slug: String
	description: String
	recordCount: Int
	attributes: JSON!
	updatedISO: String
}
`
